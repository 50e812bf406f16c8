package domain

import "math"

type Phase string

const (
	PhaseInactive Phase = "inactive"
	PhaseActive   Phase = "active"
	PhaseComplete Phase = "complete"
)

// Session is one pass over a deck. Order holds indices into the deck's
// cards, so the deck itself is never reordered.
type Session struct {
	DeckID  string
	Order   []int
	Index   int
	Correct int
}

func NewSession(deckID string, order []int) *Session {
	return &Session{DeckID: deckID, Order: order}
}

func (s *Session) Total() int {
	return len(s.Order)
}

func (s *Session) Complete() bool {
	return s.Index >= len(s.Order)
}

func (s *Session) Phase() Phase {
	if s == nil {
		return PhaseInactive
	}
	if s.Complete() {
		return PhaseComplete
	}
	return PhaseActive
}

// CardIndex is the deck position of the card under review.
func (s *Session) CardIndex() int {
	return s.Order[s.Index]
}

func (s *Session) Answer(gotIt bool) {
	if gotIt {
		s.Correct++
	}
	s.Index++
}

// Restart reshuffles with order and clears the counters.
func (s *Session) Restart(order []int) {
	s.Order = order
	s.Index = 0
	s.Correct = 0
}

// Score is the rounded percentage of correct answers.
func (s *Session) Score() int {
	if len(s.Order) == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(len(s.Order)) * 100))
}
