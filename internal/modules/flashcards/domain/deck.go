package domain

import (
	"fmt"
	"strings"

	apperrors "studysphere/internal/platform/errors"
)

const SchemaVersion = 1

const (
	ManagedCardsStart = "<!-- sphere:cards:start -->"
	ManagedCardsEnd   = "<!-- sphere:cards:end -->"
)

// CardDraft is a card that has not been assigned an id yet.
type CardDraft struct {
	Front string
	Back  string
}

func (c CardDraft) Validate() error {
	if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
		return fmt.Errorf("card front and back are required: %w", apperrors.ErrInvalidInput)
	}
	return nil
}

// DeckDocument is the portable form of a deck used by deck files.
type DeckDocument struct {
	ID    string
	Name  string
	Cards []CardDraft
}

func ValidateDeckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("deck name is required: %w", apperrors.ErrInvalidInput)
	}
	return nil
}
