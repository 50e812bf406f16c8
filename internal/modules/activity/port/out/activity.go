package out

import (
	"context"
	"time"

	"studysphere/internal/modules/activity/domain"
)

type Log interface {
	Append(ctx context.Context, entry domain.Entry) error
	Since(ctx context.Context, since time.Time) ([]domain.Entry, error)
	Recent(ctx context.Context, limit int) ([]domain.Entry, error)
}
