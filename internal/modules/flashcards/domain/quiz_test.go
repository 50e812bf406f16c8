package domain_test

import (
	"testing"

	"studysphere/internal/modules/flashcards/domain"
)

func TestSessionScoresAnswers(t *testing.T) {
	t.Parallel()
	session := domain.NewSession("d1", []int{2, 0, 3, 1})
	if session.Phase() != domain.PhaseActive {
		t.Fatalf("expected active session")
	}
	for _, gotIt := range []bool{true, false, true, true} {
		session.Answer(gotIt)
	}
	if session.Phase() != domain.PhaseComplete {
		t.Fatalf("expected complete session")
	}
	if session.Score() != 75 {
		t.Fatalf("expected score 75, got %d", session.Score())
	}
}

func TestSessionScoreRounds(t *testing.T) {
	t.Parallel()
	session := domain.NewSession("d1", []int{0, 1, 2})
	session.Answer(true)
	session.Answer(true)
	session.Answer(false)
	if session.Score() != 67 {
		t.Fatalf("expected 67, got %d", session.Score())
	}
	session.Restart([]int{1, 2, 0})
	if session.Index != 0 || session.Correct != 0 || session.Phase() != domain.PhaseActive || session.CardIndex() != 1 {
		t.Fatalf("restart must reset counters, got %+v", session)
	}
}

func TestNilSessionIsInactive(t *testing.T) {
	t.Parallel()
	var session *domain.Session
	if session.Phase() != domain.PhaseInactive {
		t.Fatalf("expected inactive")
	}
}

func TestCardDraftValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.CardDraft{Front: " ", Back: "b"}).Validate(); err == nil {
		t.Fatalf("expected blank front to fail")
	}
	if err := (domain.CardDraft{Front: "f", Back: "b"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := domain.ValidateDeckName(""); err == nil {
		t.Fatalf("expected blank deck name to fail")
	}
}
