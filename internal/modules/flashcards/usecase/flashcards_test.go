package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	activitydto "studysphere/internal/modules/activity/dto"
	flashcardsout "studysphere/internal/modules/flashcards/adapter/out"
	"studysphere/internal/modules/flashcards/dto"
	flashcardsin "studysphere/internal/modules/flashcards/port/in"
	"studysphere/internal/modules/flashcards/service"
	"studysphere/internal/modules/flashcards/usecase"
	statein "studysphere/internal/modules/state/port/in"
	stateservice "studysphere/internal/modules/state/service"
	stateusecase "studysphere/internal/modules/state/usecase"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/random"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type memoryBackend struct{ payload []byte }

func (m *memoryBackend) Read(context.Context) ([]byte, error) {
	if m.payload == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.payload, nil
}

func (m *memoryBackend) Write(_ context.Context, payload []byte) error {
	m.payload = append([]byte(nil), payload...)
	return nil
}

type fakeRecorder struct{ quizzes []activitydto.QuizInput }

func (r *fakeRecorder) RecordFocus(context.Context, activitydto.FocusInput) error { return nil }
func (r *fakeRecorder) RecordQuiz(_ context.Context, input activitydto.QuizInput) error {
	r.quizzes = append(r.quizzes, input)
	return nil
}

func newInteractor(t *testing.T) (flashcardsin.Usecase, statein.Store, *fakeRecorder) {
	t.Helper()
	ids := &seqID{}
	store := stateusecase.NewStore(stateservice.NewStateService(fixedClock{}, ids), &memoryBackend{}, nil)
	store.Load(context.Background())
	recorder := &fakeRecorder{}
	uc := usecase.NewInteractor(
		service.NewDeckService(store, ids),
		service.NewQuizService(random.NewSeeded(11)),
		flashcardsout.NewMarkdownDeckFiles(),
		recorder,
		nil,
	)
	return uc, store, recorder
}

func newDeck(t *testing.T, uc flashcardsin.Usecase, name string, cards int) dto.DeckOutput {
	t.Helper()
	ctx := context.Background()
	deck, err := uc.CreateDeck(ctx, name)
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	for i := 0; i < cards; i++ {
		if _, err := uc.AddCard(ctx, dto.CardInput{DeckID: deck.ID, Front: "front " + strconv.Itoa(i), Back: "back " + strconv.Itoa(i)}); err != nil {
			t.Fatalf("add card: %v", err)
		}
	}
	return deck
}

func TestQuizScoresSeventyFive(t *testing.T) {
	t.Parallel()
	uc, _, recorder := newInteractor(t)
	deck := newDeck(t, uc, "Verbs", 4)

	view, err := uc.StartQuiz(deck.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Phase != "active" || view.Total != 4 || view.Card == nil {
		t.Fatalf("unexpected start view %+v", view)
	}
	if _, err := uc.Score(); !errors.Is(err, apperrors.ErrQuizNotComplete) {
		t.Fatalf("score before completion must fail, got %v", err)
	}
	for _, gotIt := range []bool{true, false, true, true} {
		if view, err = uc.Answer(context.Background(), gotIt); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}
	if view.Phase != "complete" || view.Score != 75 || view.Card != nil {
		t.Fatalf("unexpected final view %+v", view)
	}
	score, err := uc.Score()
	if err != nil || score != 75 {
		t.Fatalf("expected 75, got %d (%v)", score, err)
	}
	if _, err := uc.Answer(context.Background(), true); !errors.Is(err, apperrors.ErrNoActiveQuiz) {
		t.Fatalf("answer after completion must fail, got %v", err)
	}
	if len(recorder.quizzes) != 1 || recorder.quizzes[0].Score != 75 || recorder.quizzes[0].DeckName != "Verbs" {
		t.Fatalf("expected one recorded quiz, got %+v", recorder.quizzes)
	}
}

func TestQuizVisitsEveryCardOnceWithoutReorderingDeck(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	deck := newDeck(t, uc, "Numbers", 8)
	before, err := uc.GetDeck(deck.ID)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}

	view, err := uc.StartQuiz(deck.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	var seen []string
	for view.Phase == "active" {
		seen = append(seen, view.Card.ID)
		if view, err = uc.Answer(context.Background(), true); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}
	want := make([]string, 0, len(before.Cards))
	for _, card := range before.Cards {
		want = append(want, card.ID)
	}
	sort.Strings(seen)
	sort.Strings(want)
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("expected a permutation of %v, got %v", want, seen)
	}

	after, err := uc.GetDeck(deck.ID)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	for i := range before.Cards {
		if before.Cards[i] != after.Cards[i] {
			t.Fatalf("deck order changed at %d", i)
		}
	}
}

func TestQuizGuards(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)

	if _, err := uc.StartQuiz(""); !errors.Is(err, apperrors.ErrNoDeckSelected) {
		t.Fatalf("expected no deck selected, got %v", err)
	}
	if _, err := uc.StartQuiz("missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	empty := newDeck(t, uc, "Empty", 0)
	if _, err := uc.StartQuiz(empty.ID); !errors.Is(err, apperrors.ErrDeckEmpty) {
		t.Fatalf("expected deck empty, got %v", err)
	}
	if uc.Quiz().Phase != "inactive" {
		t.Fatalf("failed start must leave quiz inactive")
	}
	if _, err := uc.Answer(context.Background(), true); !errors.Is(err, apperrors.ErrNoActiveQuiz) {
		t.Fatalf("expected no active quiz, got %v", err)
	}
	if _, err := uc.Restart(); !errors.Is(err, apperrors.ErrQuizNotComplete) {
		t.Fatalf("expected quiz not complete, got %v", err)
	}
}

func TestRestartOnlyFromComplete(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	deck := newDeck(t, uc, "Short", 2)
	if _, err := uc.StartQuiz(deck.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Restart(); !errors.Is(err, apperrors.ErrQuizNotComplete) {
		t.Fatalf("restart mid-quiz must fail, got %v", err)
	}
	uc.Answer(context.Background(), false)
	uc.Answer(context.Background(), true)
	view, err := uc.Restart()
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if view.Phase != "active" || view.Index != 0 || view.Correct != 0 || view.Total != 2 {
		t.Fatalf("unexpected restart view %+v", view)
	}
	if view := uc.Exit(); view.Phase != "inactive" {
		t.Fatalf("exit must deactivate, got %+v", view)
	}
}

func TestSessionDiscardedOnDeckSwitchOrDelete(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	ctx := context.Background()
	first := newDeck(t, uc, "First", 2)
	second := newDeck(t, uc, "Second", 2)

	if _, err := uc.StartQuiz(first.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := uc.SelectDeck(first.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if uc.Quiz().Phase != "active" {
		t.Fatalf("reselecting the same deck must keep the session")
	}
	if err := uc.SelectDeck(second.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if uc.Quiz().Phase != "inactive" {
		t.Fatalf("selecting another deck must discard the session")
	}

	if _, err := uc.StartQuiz(""); err != nil {
		t.Fatalf("start selected deck: %v", err)
	}
	if err := uc.DeleteDeck(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if view := uc.Quiz(); view.Phase != "inactive" || uc.SelectedDeck() != "" {
		t.Fatalf("deleting the deck must discard the session, got %+v", view)
	}
}

func TestDeckAndCardCrud(t *testing.T) {
	t.Parallel()
	uc, store, _ := newInteractor(t)
	ctx := context.Background()
	initial := len(uc.ListDecks())

	deck := newDeck(t, uc, "Chem", 1)
	if _, err := uc.CreateDeck(ctx, "  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid deck name, got %v", err)
	}
	if _, err := uc.RenameDeck(ctx, deck.ID, "Chemistry"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	found, err := uc.FindDeck("chemistry")
	if err != nil || found.ID != deck.ID {
		t.Fatalf("expected lookup by name, got %+v (%v)", found, err)
	}
	card := found.Cards[0]
	if _, err := uc.EditCard(ctx, dto.EditCardInput{DeckID: deck.ID, CardID: card.ID, Front: "H2O", Back: "Water"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := uc.AddCard(ctx, dto.CardInput{DeckID: deck.ID, Front: "", Back: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid card, got %v", err)
	}
	added, err := uc.ImportCards(ctx, deck.ID, []dto.CardDraft{{Front: "NaCl", Back: "Salt"}, {Front: "O2", Back: "Oxygen"}})
	if err != nil || added != 2 {
		t.Fatalf("import cards: %d %v", added, err)
	}
	if err := uc.DeleteCard(ctx, deck.ID, card.ID); err != nil {
		t.Fatalf("delete card: %v", err)
	}
	if err := uc.DeleteCard(ctx, deck.ID, card.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	snapshot := store.Snapshot()
	idx := snapshot.FindDeck(deck.ID)
	if idx < 0 || len(snapshot.Flashcards.Decks[idx].Cards) != 2 || snapshot.Flashcards.Decks[idx].Name != "Chemistry" {
		t.Fatalf("unexpected stored deck %+v", snapshot.Flashcards.Decks)
	}
	if len(uc.ListDecks()) != initial+1 {
		t.Fatalf("expected one new deck")
	}
}

func TestMarkdownDeckRoundTrip(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	ctx := context.Background()
	deck, err := uc.CreateDeck(ctx, "French: Verbs")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	inputs := []dto.CardInput{
		{DeckID: deck.ID, Front: "Être", Back: "To be"},
		{DeckID: deck.ID, Front: "Line one\nline two", Back: `C:\path`},
	}
	for _, input := range inputs {
		if _, err := uc.AddCard(ctx, input); err != nil {
			t.Fatalf("add card: %v", err)
		}
	}

	dir := t.TempDir()
	exported, err := uc.ExportDeck(ctx, deck.ID, dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(exported.Path) != "french-verbs.md" {
		t.Fatalf("unexpected file name %s", exported.Path)
	}
	raw, err := os.ReadFile(exported.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), "schema_version: 1") || !strings.Contains(string(raw), "Q: Être") {
		t.Fatalf("unexpected export:\n%s", raw)
	}

	imported, err := uc.ImportDeck(ctx, exported.Path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Deck.ID == deck.ID || imported.Deck.Name != "French: Verbs" || imported.Cards != 2 {
		t.Fatalf("unexpected import %+v", imported)
	}
	detail, err := uc.GetDeck(imported.Deck.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for i, input := range inputs {
		if detail.Cards[i].Front != input.Front || detail.Cards[i].Back != input.Back {
			t.Fatalf("card %d differs: %+v", i, detail.Cards[i])
		}
	}
}

func TestImportRejectsMalformedDeck(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	path := filepath.Join(t.TempDir(), "broken.md")
	content := "---\nname: Broken\n---\n\nQ: dangling question\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := uc.ImportDeck(context.Background(), path); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.ImportDeck(context.Background(), filepath.Join(t.TempDir(), "none.md")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
