package service

import (
	"context"
	"fmt"
	"strings"

	"studysphere/internal/modules/flashcards/domain"
	statedomain "studysphere/internal/modules/state/domain"
	statein "studysphere/internal/modules/state/port/in"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/id"
)

type DeckService struct {
	store statein.Store
	ids   id.Generator
}

func NewDeckService(store statein.Store, ids id.Generator) *DeckService {
	return &DeckService{store: store, ids: ids}
}

func (s *DeckService) List() []statedomain.Deck {
	return s.store.Snapshot().Flashcards.Decks
}

func (s *DeckService) Get(deckID string) (statedomain.Deck, error) {
	snapshot := s.store.Snapshot()
	idx := snapshot.FindDeck(deckID)
	if idx < 0 {
		return statedomain.Deck{}, fmt.Errorf("deck %q: %w", deckID, apperrors.ErrNotFound)
	}
	return snapshot.Flashcards.Decks[idx], nil
}

// Find resolves a deck by id, then by case-insensitive name.
func (s *DeckService) Find(ref string) (statedomain.Deck, error) {
	if deck, err := s.Get(ref); err == nil {
		return deck, nil
	}
	for _, deck := range s.List() {
		if strings.EqualFold(deck.Name, strings.TrimSpace(ref)) {
			return deck, nil
		}
	}
	return statedomain.Deck{}, fmt.Errorf("deck %q: %w", ref, apperrors.ErrNotFound)
}

func (s *DeckService) Create(ctx context.Context, name string, drafts []domain.CardDraft) (statedomain.Deck, error) {
	if err := domain.ValidateDeckName(name); err != nil {
		return statedomain.Deck{}, err
	}
	cards, err := s.newCards(drafts)
	if err != nil {
		return statedomain.Deck{}, err
	}
	deck := statedomain.Deck{ID: s.ids.New(), Name: strings.TrimSpace(name), Cards: cards}
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Flashcards.Decks = append([]statedomain.Deck{deck}, state.Flashcards.Decks...)
		return nil
	})
	if err != nil {
		return statedomain.Deck{}, err
	}
	return deck, nil
}

func (s *DeckService) Rename(ctx context.Context, deckID, name string) (statedomain.Deck, error) {
	if err := domain.ValidateDeckName(name); err != nil {
		return statedomain.Deck{}, err
	}
	var renamed statedomain.Deck
	err := s.withDeck(ctx, deckID, func(deck *statedomain.Deck) error {
		deck.Name = strings.TrimSpace(name)
		renamed = *deck
		return nil
	})
	return renamed, err
}

func (s *DeckService) Delete(ctx context.Context, deckID string) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := state.FindDeck(deckID)
		if idx < 0 {
			return fmt.Errorf("deck %q: %w", deckID, apperrors.ErrNotFound)
		}
		state.Flashcards.Decks = append(state.Flashcards.Decks[:idx], state.Flashcards.Decks[idx+1:]...)
		return nil
	})
}

func (s *DeckService) AddCards(ctx context.Context, deckID string, drafts []domain.CardDraft) ([]statedomain.Card, error) {
	cards, err := s.newCards(drafts)
	if err != nil {
		return nil, err
	}
	err = s.withDeck(ctx, deckID, func(deck *statedomain.Deck) error {
		deck.Cards = append(deck.Cards, cards...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *DeckService) EditCard(ctx context.Context, deckID, cardID string, draft domain.CardDraft) (statedomain.Card, error) {
	if err := draft.Validate(); err != nil {
		return statedomain.Card{}, err
	}
	var edited statedomain.Card
	err := s.withDeck(ctx, deckID, func(deck *statedomain.Deck) error {
		for i := range deck.Cards {
			if deck.Cards[i].ID == cardID {
				deck.Cards[i].Front = strings.TrimSpace(draft.Front)
				deck.Cards[i].Back = strings.TrimSpace(draft.Back)
				edited = deck.Cards[i]
				return nil
			}
		}
		return fmt.Errorf("card %q: %w", cardID, apperrors.ErrNotFound)
	})
	return edited, err
}

func (s *DeckService) DeleteCard(ctx context.Context, deckID, cardID string) error {
	return s.withDeck(ctx, deckID, func(deck *statedomain.Deck) error {
		for i := range deck.Cards {
			if deck.Cards[i].ID == cardID {
				deck.Cards = append(deck.Cards[:i], deck.Cards[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("card %q: %w", cardID, apperrors.ErrNotFound)
	})
}

func (s *DeckService) withDeck(ctx context.Context, deckID string, fn func(*statedomain.Deck) error) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := state.FindDeck(deckID)
		if idx < 0 {
			return fmt.Errorf("deck %q: %w", deckID, apperrors.ErrNotFound)
		}
		return fn(&state.Flashcards.Decks[idx])
	})
}

func (s *DeckService) newCards(drafts []domain.CardDraft) ([]statedomain.Card, error) {
	cards := make([]statedomain.Card, 0, len(drafts))
	for _, draft := range drafts {
		if err := draft.Validate(); err != nil {
			return nil, err
		}
		cards = append(cards, statedomain.Card{
			ID:    s.ids.New(),
			Front: strings.TrimSpace(draft.Front),
			Back:  strings.TrimSpace(draft.Back),
		})
	}
	return cards, nil
}
