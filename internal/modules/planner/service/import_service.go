package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"studysphere/internal/modules/planner/domain"
	plannerout "studysphere/internal/modules/planner/port/out"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/markdown"
)

// ImportService turns markdown files and PDF page ranges into note drafts.
type ImportService struct {
	mdReader  plannerout.MarkdownReader
	pdfReader plannerout.PDFReader
}

func NewImportService(mdReader plannerout.MarkdownReader, pdfReader plannerout.PDFReader) *ImportService {
	return &ImportService{mdReader: mdReader, pdfReader: pdfReader}
}

func (s *ImportService) Import(ctx context.Context, path string, fromPage, toPage int) (domain.NoteDraft, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt":
		return s.importMarkdown(ctx, path)
	case ".pdf":
		return s.importPDF(ctx, path, fromPage, toPage)
	default:
		return domain.NoteDraft{}, fmt.Errorf("unsupported note file %q: %w", filepath.Base(path), apperrors.ErrInvalidInput)
	}
}

// importMarkdown takes the title from frontmatter, then the first heading,
// then the file name.
func (s *ImportService) importMarkdown(ctx context.Context, path string) (domain.NoteDraft, error) {
	content, err := s.mdReader.Read(ctx, path)
	if err != nil {
		return domain.NoteDraft{}, err
	}
	meta, body, err := markdown.SplitFrontmatter(content)
	if err != nil {
		return domain.NoteDraft{}, fmt.Errorf("parse %s: %w", path, err)
	}
	title := markdown.MetaString(meta, "title")
	if title == "" {
		for _, line := range strings.Split(body, "\n") {
			if strings.HasPrefix(line, "# ") {
				title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
				break
			}
		}
	}
	if title == "" {
		title = baseName(path)
	}
	return domain.NoteDraft{Title: title, Body: strings.TrimSpace(body)}, nil
}

func (s *ImportService) importPDF(ctx context.Context, path string, fromPage, toPage int) (domain.NoteDraft, error) {
	if fromPage <= 0 {
		fromPage = 1
	}
	first, total, err := s.pdfReader.ReadPage(ctx, path, fromPage)
	if err != nil {
		return domain.NoteDraft{}, err
	}
	if toPage <= 0 || toPage > total {
		toPage = total
	}
	if toPage < fromPage {
		return domain.NoteDraft{}, fmt.Errorf("page range %d-%d is empty: %w", fromPage, toPage, apperrors.ErrInvalidInput)
	}

	pages := []string{first.Text}
	for page := fromPage + 1; page <= toPage; page++ {
		next, _, err := s.pdfReader.ReadPage(ctx, path, page)
		if err != nil {
			return domain.NoteDraft{}, err
		}
		pages = append(pages, next.Text)
	}
	title := fmt.Sprintf("%s (p. %d)", baseName(path), fromPage)
	if toPage > fromPage {
		title = fmt.Sprintf("%s (pp. %d-%d)", baseName(path), fromPage, toPage)
	}
	return domain.NoteDraft{Title: title, Body: strings.Join(pages, "\n\n")}, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
