package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	"studysphere/internal/modules/planner/domain"
	plannerout "studysphere/internal/modules/planner/port/out"
	apperrors "studysphere/internal/platform/errors"
)

type LocalPDFReader struct{}

func NewLocalPDFReader() plannerout.PDFReader {
	return &LocalPDFReader{}
}

// ReadPage extracts the text runs of one page, joined by spaces. Pages past
// the end are reported as invalid input.
func (r *LocalPDFReader) ReadPage(_ context.Context, path string, page int) (domain.Page, int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Page{}, 0, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	if page < 1 || page > total {
		return domain.Page{}, total, fmt.Errorf("page %d outside 1..%d: %w", page, total, apperrors.ErrInvalidInput)
	}
	p := doc.Page(page)
	if p.V.IsNull() {
		return domain.Page{}, total, fmt.Errorf("pdf page %d is null", page)
	}
	content := p.Content()
	parts := make([]string, 0, len(content.Text))
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		parts = append(parts, text.S)
	}
	return domain.Page{Number: page, Text: strings.Join(parts, " ")}, total, nil
}
