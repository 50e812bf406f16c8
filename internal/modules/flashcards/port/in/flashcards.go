package in

import (
	"context"

	"studysphere/internal/modules/flashcards/dto"
)

type DeckUsecase interface {
	ListDecks() []dto.DeckOutput
	GetDeck(deckID string) (dto.DeckDetailOutput, error)
	FindDeck(ref string) (dto.DeckDetailOutput, error)
	CreateDeck(ctx context.Context, name string) (dto.DeckOutput, error)
	RenameDeck(ctx context.Context, deckID, name string) (dto.DeckOutput, error)
	DeleteDeck(ctx context.Context, deckID string) error
	AddCard(ctx context.Context, input dto.CardInput) (dto.CardOutput, error)
	EditCard(ctx context.Context, input dto.EditCardInput) (dto.CardOutput, error)
	DeleteCard(ctx context.Context, deckID, cardID string) error
	ImportCards(ctx context.Context, deckID string, cards []dto.CardDraft) (int, error)
	ExportDeck(ctx context.Context, deckID, dir string) (dto.ExportOutput, error)
	ImportDeck(ctx context.Context, path string) (dto.ImportOutput, error)
}

// QuizUsecase is the review state machine: inactive, active, complete.
type QuizUsecase interface {
	SelectDeck(deckID string) error
	SelectedDeck() string
	StartQuiz(deckID string) (dto.QuizOutput, error)
	Answer(ctx context.Context, gotIt bool) (dto.QuizOutput, error)
	Restart() (dto.QuizOutput, error)
	Exit() dto.QuizOutput
	Quiz() dto.QuizOutput
	Score() (int, error)
}

type Usecase interface {
	DeckUsecase
	QuizUsecase
}
