package out

import (
	"context"

	"studysphere/internal/modules/planner/domain"
)

type MarkdownReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// PDFReader returns the requested page and the document's page count.
type PDFReader interface {
	ReadPage(ctx context.Context, path string, page int) (domain.Page, int, error)
}
