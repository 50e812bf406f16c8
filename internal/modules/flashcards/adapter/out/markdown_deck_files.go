package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studysphere/internal/modules/flashcards/domain"
	flashcardsout "studysphere/internal/modules/flashcards/port/out"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/markdown"
	"studysphere/internal/platform/slug"
)

const (
	frontPrefix = "Q: "
	backPrefix  = "A: "
)

type MarkdownDeckFiles struct{}

func NewMarkdownDeckFiles() flashcardsout.DeckFiles {
	return MarkdownDeckFiles{}
}

// Export writes <dir>/<slug>.md. Text outside the managed card block of an
// existing file is kept.
func (MarkdownDeckFiles) Export(_ context.Context, dir string, deck domain.DeckDocument) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create deck directory: %w", err)
	}
	path := filepath.Join(dir, slug.Make(deck.Name)+".md")

	body := ""
	if existing, err := os.ReadFile(path); err == nil {
		if _, existingBody, splitErr := markdown.SplitFrontmatter(string(existing)); splitErr == nil {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "# " + deck.Name + "\n"
	}
	body = markdown.ReplaceManagedBlock(body, domain.ManagedCardsStart, domain.ManagedCardsEnd, renderCards(deck.Cards))

	rendered, err := markdown.RenderFrontmatter(map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             deck.ID,
		"name":           deck.Name,
	}, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write deck markdown: %w", err)
	}
	return path, nil
}

func (MarkdownDeckFiles) Import(_ context.Context, path string) (domain.DeckDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DeckDocument{}, fmt.Errorf("deck file %s: %w", path, apperrors.ErrNotFound)
		}
		return domain.DeckDocument{}, fmt.Errorf("read deck file: %w", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(content))
	if err != nil {
		return domain.DeckDocument{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if version := markdown.MetaInt(meta, "schema_version"); version > domain.SchemaVersion {
		return domain.DeckDocument{}, fmt.Errorf("deck file schema %d is newer than %d: %w", version, domain.SchemaVersion, apperrors.ErrInvalidInput)
	}

	document := domain.DeckDocument{
		ID:   markdown.MetaString(meta, "id"),
		Name: markdown.MetaString(meta, "name"),
	}
	if strings.TrimSpace(document.Name) == "" {
		document.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	block, ok := markdown.ManagedBlock(body, domain.ManagedCardsStart, domain.ManagedCardsEnd)
	if !ok {
		block = body
	}
	cards, err := parseCards(block)
	if err != nil {
		return domain.DeckDocument{}, fmt.Errorf("parse %s: %w", path, err)
	}
	document.Cards = cards
	return document, nil
}

func renderCards(cards []domain.CardDraft) string {
	lines := make([]string, 0, len(cards)*3)
	for i, card := range cards {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, frontPrefix+escape(card.Front), backPrefix+escape(card.Back))
	}
	return strings.Join(lines, "\n")
}

func parseCards(block string) ([]domain.CardDraft, error) {
	var (
		cards   []domain.CardDraft
		pending *domain.CardDraft
	)
	for n, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, frontPrefix):
			if pending != nil {
				return nil, fmt.Errorf("line %d: question without answer: %w", n+1, apperrors.ErrInvalidInput)
			}
			pending = &domain.CardDraft{Front: unescape(strings.TrimPrefix(line, frontPrefix))}
		case strings.HasPrefix(line, backPrefix):
			if pending == nil {
				return nil, fmt.Errorf("line %d: answer without question: %w", n+1, apperrors.ErrInvalidInput)
			}
			pending.Back = unescape(strings.TrimPrefix(line, backPrefix))
			cards = append(cards, *pending)
			pending = nil
		}
	}
	if pending != nil {
		return nil, fmt.Errorf("last question has no answer: %w", apperrors.ErrInvalidInput)
	}
	return cards, nil
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

func escape(s string) string   { return escaper.Replace(s) }
func unescape(s string) string { return unescaper.Replace(s) }
