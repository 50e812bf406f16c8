package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	activitydto "studysphere/internal/modules/activity/dto"
	activityin "studysphere/internal/modules/activity/port/in"
	"studysphere/internal/modules/flashcards/domain"
	"studysphere/internal/modules/flashcards/dto"
	flashcardsin "studysphere/internal/modules/flashcards/port/in"
	flashcardsout "studysphere/internal/modules/flashcards/port/out"
	"studysphere/internal/modules/flashcards/service"
	statedomain "studysphere/internal/modules/state/domain"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/logging"
)

type Interactor struct {
	decks    *service.DeckService
	quiz     *service.QuizService
	files    flashcardsout.DeckFiles
	recorder activityin.Recorder
	logger   hclog.Logger

	mu       sync.Mutex
	selected string
	session  *domain.Session
}

func NewInteractor(decks *service.DeckService, quiz *service.QuizService, files flashcardsout.DeckFiles, recorder activityin.Recorder, logger hclog.Logger) flashcardsin.Usecase {
	return &Interactor{
		decks:    decks,
		quiz:     quiz,
		files:    files,
		recorder: recorder,
		logger:   logging.OrDiscard(logger),
	}
}

func (i *Interactor) ListDecks() []dto.DeckOutput {
	decks := i.decks.List()
	out := make([]dto.DeckOutput, 0, len(decks))
	for _, deck := range decks {
		out = append(out, toDeck(deck))
	}
	return out
}

func (i *Interactor) GetDeck(deckID string) (dto.DeckDetailOutput, error) {
	deck, err := i.decks.Get(deckID)
	if err != nil {
		return dto.DeckDetailOutput{}, err
	}
	return toDeckDetail(deck), nil
}

func (i *Interactor) FindDeck(ref string) (dto.DeckDetailOutput, error) {
	deck, err := i.decks.Find(ref)
	if err != nil {
		return dto.DeckDetailOutput{}, err
	}
	return toDeckDetail(deck), nil
}

func (i *Interactor) CreateDeck(ctx context.Context, name string) (dto.DeckOutput, error) {
	deck, err := i.decks.Create(ctx, name, nil)
	if err != nil {
		return dto.DeckOutput{}, err
	}
	i.mu.Lock()
	i.selectLocked(deck.ID)
	i.mu.Unlock()
	return toDeck(deck), nil
}

func (i *Interactor) RenameDeck(ctx context.Context, deckID, name string) (dto.DeckOutput, error) {
	deck, err := i.decks.Rename(ctx, deckID, name)
	if err != nil {
		return dto.DeckOutput{}, err
	}
	return toDeck(deck), nil
}

func (i *Interactor) DeleteDeck(ctx context.Context, deckID string) error {
	if err := i.decks.Delete(ctx, deckID); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.session != nil && i.session.DeckID == deckID {
		i.session = nil
	}
	if i.selected == deckID {
		i.selected = ""
	}
	return nil
}

func (i *Interactor) AddCard(ctx context.Context, input dto.CardInput) (dto.CardOutput, error) {
	cards, err := i.decks.AddCards(ctx, input.DeckID, []domain.CardDraft{{Front: input.Front, Back: input.Back}})
	if err != nil {
		return dto.CardOutput{}, err
	}
	return toCard(cards[0]), nil
}

func (i *Interactor) EditCard(ctx context.Context, input dto.EditCardInput) (dto.CardOutput, error) {
	card, err := i.decks.EditCard(ctx, input.DeckID, input.CardID, domain.CardDraft{Front: input.Front, Back: input.Back})
	if err != nil {
		return dto.CardOutput{}, err
	}
	return toCard(card), nil
}

// DeleteCard discards a running quiz over the same deck, since its order
// indexes the deck's cards.
func (i *Interactor) DeleteCard(ctx context.Context, deckID, cardID string) error {
	if err := i.decks.DeleteCard(ctx, deckID, cardID); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.session != nil && i.session.DeckID == deckID {
		i.session = nil
	}
	return nil
}

func (i *Interactor) ImportCards(ctx context.Context, deckID string, cards []dto.CardDraft) (int, error) {
	drafts := make([]domain.CardDraft, 0, len(cards))
	for _, card := range cards {
		drafts = append(drafts, domain.CardDraft{Front: card.Front, Back: card.Back})
	}
	added, err := i.decks.AddCards(ctx, deckID, drafts)
	if err != nil {
		return 0, err
	}
	return len(added), nil
}

func (i *Interactor) ExportDeck(ctx context.Context, deckID, dir string) (dto.ExportOutput, error) {
	if i.files == nil {
		return dto.ExportOutput{}, fmt.Errorf("deck files are not configured")
	}
	deck, err := i.decks.Get(deckID)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	document := domain.DeckDocument{ID: deck.ID, Name: deck.Name}
	for _, card := range deck.Cards {
		document.Cards = append(document.Cards, domain.CardDraft{Front: card.Front, Back: card.Back})
	}
	path, err := i.files.Export(ctx, dir, document)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{DeckID: deck.ID, Path: path}, nil
}

// ImportDeck always creates a new deck; ids in the file are not reused.
func (i *Interactor) ImportDeck(ctx context.Context, path string) (dto.ImportOutput, error) {
	if i.files == nil {
		return dto.ImportOutput{}, fmt.Errorf("deck files are not configured")
	}
	document, err := i.files.Import(ctx, path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	deck, err := i.decks.Create(ctx, document.Name, document.Cards)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{Deck: toDeck(deck), Path: path, Cards: len(deck.Cards)}, nil
}

func (i *Interactor) SelectDeck(deckID string) error {
	if deckID != "" {
		if _, err := i.decks.Get(deckID); err != nil {
			return err
		}
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.selectLocked(deckID)
	return nil
}

func (i *Interactor) SelectedDeck() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.selected
}

// selectLocked switches the selection; a session over another deck is dropped.
func (i *Interactor) selectLocked(deckID string) {
	i.selected = deckID
	if i.session != nil && i.session.DeckID != deckID {
		i.session = nil
	}
}

// StartQuiz begins a shuffled pass over deckID, or over the selected deck
// when deckID is empty.
func (i *Interactor) StartQuiz(deckID string) (dto.QuizOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if deckID == "" {
		deckID = i.selected
	}
	if deckID == "" {
		return dto.QuizOutput{}, apperrors.ErrNoDeckSelected
	}
	deck, err := i.decks.Get(deckID)
	if err != nil {
		return dto.QuizOutput{}, err
	}
	if len(deck.Cards) == 0 {
		return dto.QuizOutput{}, fmt.Errorf("deck %q: %w", deck.Name, apperrors.ErrDeckEmpty)
	}
	i.selectLocked(deck.ID)
	i.session = i.quiz.NewSession(deck.ID, len(deck.Cards))
	return i.viewLocked(), nil
}

func (i *Interactor) Answer(ctx context.Context, gotIt bool) (dto.QuizOutput, error) {
	i.mu.Lock()
	if i.session == nil || i.session.Complete() {
		i.mu.Unlock()
		return dto.QuizOutput{}, apperrors.ErrNoActiveQuiz
	}
	i.session.Answer(gotIt)
	view := i.viewLocked()
	i.mu.Unlock()

	if view.Phase == string(domain.PhaseComplete) {
		i.record(ctx, view)
	}
	return view, nil
}

func (i *Interactor) Restart() (dto.QuizOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.session == nil || !i.session.Complete() {
		return dto.QuizOutput{}, apperrors.ErrQuizNotComplete
	}
	deck, err := i.decks.Get(i.session.DeckID)
	if err != nil {
		i.session = nil
		return dto.QuizOutput{}, err
	}
	if len(deck.Cards) == 0 {
		i.session = nil
		return dto.QuizOutput{}, fmt.Errorf("deck %q: %w", deck.Name, apperrors.ErrDeckEmpty)
	}
	i.quiz.Reshuffle(i.session, len(deck.Cards))
	return i.viewLocked(), nil
}

func (i *Interactor) Exit() dto.QuizOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.session = nil
	return i.viewLocked()
}

func (i *Interactor) Quiz() dto.QuizOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.viewLocked()
}

func (i *Interactor) Score() (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.session == nil || !i.session.Complete() {
		return 0, apperrors.ErrQuizNotComplete
	}
	return i.session.Score(), nil
}

// viewLocked renders the session. A session whose deck vanished from the
// store, or shrank underneath it, is dropped.
func (i *Interactor) viewLocked() dto.QuizOutput {
	if i.session == nil {
		return dto.QuizOutput{Phase: string(domain.PhaseInactive), DeckID: i.selected}
	}
	deck, err := i.decks.Get(i.session.DeckID)
	if err != nil {
		i.session = nil
		return dto.QuizOutput{Phase: string(domain.PhaseInactive), DeckID: i.selected}
	}
	view := dto.QuizOutput{
		Phase:    string(i.session.Phase()),
		DeckID:   deck.ID,
		DeckName: deck.Name,
		Index:    i.session.Index,
		Total:    i.session.Total(),
		Correct:  i.session.Correct,
	}
	if i.session.Complete() {
		view.Score = i.session.Score()
		return view
	}
	idx := i.session.CardIndex()
	if idx >= len(deck.Cards) {
		i.session = nil
		return dto.QuizOutput{Phase: string(domain.PhaseInactive), DeckID: i.selected}
	}
	card := toCard(deck.Cards[idx])
	view.Card = &card
	return view
}

func (i *Interactor) record(ctx context.Context, view dto.QuizOutput) {
	if i.recorder == nil {
		return
	}
	err := i.recorder.RecordQuiz(ctx, activitydto.QuizInput{
		DeckName: view.DeckName,
		Correct:  view.Correct,
		Total:    view.Total,
		Score:    view.Score,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		i.logger.Warn("record quiz result failed", "deck", view.DeckID, "error", err)
	}
}

func toDeck(deck statedomain.Deck) dto.DeckOutput {
	return dto.DeckOutput{ID: deck.ID, Name: deck.Name, CardCount: len(deck.Cards)}
}

func toDeckDetail(deck statedomain.Deck) dto.DeckDetailOutput {
	out := dto.DeckDetailOutput{ID: deck.ID, Name: deck.Name, Cards: make([]dto.CardOutput, 0, len(deck.Cards))}
	for _, card := range deck.Cards {
		out.Cards = append(out.Cards, toCard(card))
	}
	return out
}

func toCard(card statedomain.Card) dto.CardOutput {
	return dto.CardOutput{ID: card.ID, Front: card.Front, Back: card.Back}
}
