package out

import (
	"context"

	"studysphere/internal/modules/flashcards/domain"
)

// DeckFiles reads and writes decks as markdown documents.
type DeckFiles interface {
	Export(ctx context.Context, dir string, deck domain.DeckDocument) (string, error)
	Import(ctx context.Context, path string) (domain.DeckDocument, error)
}
