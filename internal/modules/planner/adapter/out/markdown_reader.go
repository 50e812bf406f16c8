package out

import (
	"context"
	"fmt"
	"os"

	plannerout "studysphere/internal/modules/planner/port/out"
	apperrors "studysphere/internal/platform/errors"
)

type LocalMarkdownReader struct{}

func NewLocalMarkdownReader() plannerout.MarkdownReader {
	return &LocalMarkdownReader{}
}

func (r *LocalMarkdownReader) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("markdown %s: %w", path, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("read markdown: %w", err)
	}
	return string(b), nil
}
