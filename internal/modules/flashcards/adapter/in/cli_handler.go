package in

import (
	"context"

	"studysphere/internal/modules/flashcards/dto"
	flashcardsin "studysphere/internal/modules/flashcards/port/in"
)

type CLIHandler struct {
	usecase flashcardsin.Usecase
}

func NewCLIHandler(usecase flashcardsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListDecks() []dto.DeckOutput {
	return h.usecase.ListDecks()
}

// Deck resolves ref as a deck id or name.
func (h CLIHandler) Deck(ref string) (dto.DeckDetailOutput, error) {
	return h.usecase.FindDeck(ref)
}

func (h CLIHandler) CreateDeck(ctx context.Context, name string) (dto.DeckOutput, error) {
	return h.usecase.CreateDeck(ctx, name)
}

func (h CLIHandler) RenameDeck(ctx context.Context, ref, name string) (dto.DeckOutput, error) {
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return dto.DeckOutput{}, err
	}
	return h.usecase.RenameDeck(ctx, deck.ID, name)
}

func (h CLIHandler) DeleteDeck(ctx context.Context, ref string) error {
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return err
	}
	return h.usecase.DeleteDeck(ctx, deck.ID)
}

func (h CLIHandler) AddCard(ctx context.Context, ref, front, back string) (dto.CardOutput, error) {
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return dto.CardOutput{}, err
	}
	return h.usecase.AddCard(ctx, dto.CardInput{DeckID: deck.ID, Front: front, Back: back})
}

func (h CLIHandler) EditCard(ctx context.Context, ref, cardID, front, back string) (dto.CardOutput, error) {
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return dto.CardOutput{}, err
	}
	return h.usecase.EditCard(ctx, dto.EditCardInput{DeckID: deck.ID, CardID: cardID, Front: front, Back: back})
}

func (h CLIHandler) DeleteCard(ctx context.Context, ref, cardID string) error {
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return err
	}
	return h.usecase.DeleteCard(ctx, deck.ID, cardID)
}

func (h CLIHandler) ExportDeck(ctx context.Context, ref, dir string) (dto.ExportOutput, error) {
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return h.usecase.ExportDeck(ctx, deck.ID, dir)
}

func (h CLIHandler) ImportDeck(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.ImportDeck(ctx, path)
}

func (h CLIHandler) SelectDeck(deckID string) error {
	return h.usecase.SelectDeck(deckID)
}

func (h CLIHandler) SelectedDeck() string {
	return h.usecase.SelectedDeck()
}

func (h CLIHandler) StartQuiz(ref string) (dto.QuizOutput, error) {
	if ref == "" {
		return h.usecase.StartQuiz("")
	}
	deck, err := h.usecase.FindDeck(ref)
	if err != nil {
		return dto.QuizOutput{}, err
	}
	return h.usecase.StartQuiz(deck.ID)
}

func (h CLIHandler) Answer(ctx context.Context, gotIt bool) (dto.QuizOutput, error) {
	return h.usecase.Answer(ctx, gotIt)
}

func (h CLIHandler) Restart() (dto.QuizOutput, error) {
	return h.usecase.Restart()
}

func (h CLIHandler) Exit() dto.QuizOutput {
	return h.usecase.Exit()
}

func (h CLIHandler) Quiz() dto.QuizOutput {
	return h.usecase.Quiz()
}

func (h CLIHandler) Score() (int, error) {
	return h.usecase.Score()
}
