package service

import (
	"studysphere/internal/modules/flashcards/domain"
	"studysphere/internal/platform/random"
)

type QuizService struct {
	source random.Source
}

func NewQuizService(source random.Source) *QuizService {
	return &QuizService{source: source}
}

func (s *QuizService) NewSession(deckID string, cards int) *domain.Session {
	return domain.NewSession(deckID, random.Perm(s.source, cards))
}

// Reshuffle restarts session over the deck's current card count.
func (s *QuizService) Reshuffle(session *domain.Session, cards int) {
	session.Restart(random.Perm(s.source, cards))
}
