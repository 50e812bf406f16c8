package out

import (
	"context"

	flashcardsdto "studysphere/internal/modules/flashcards/dto"
	"studysphere/internal/modules/plugin/domain"
)

// ManifestStore reads plugin manifests from the data directory.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host launches plugin processes and speaks the RPC contract with them. Each
// call starts and stops its own process.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListCommands(ctx context.Context, manifest domain.Manifest) ([]domain.CommandDescriptor, error)
	Execute(ctx context.Context, manifest domain.Manifest, input domain.ExecuteRequest) (domain.ExecuteResult, error)
}

// Decks is the slice of the flashcards module plugins may read and extend.
type Decks interface {
	FindDeck(ref string) (flashcardsdto.DeckDetailOutput, error)
	ImportCards(ctx context.Context, deckID string, cards []flashcardsdto.CardDraft) (int, error)
}
