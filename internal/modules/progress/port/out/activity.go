package out

import (
	"context"
	"time"

	activitydto "studysphere/internal/modules/activity/dto"
)

// ActivitySource supplies focus and quiz totals for insights.
type ActivitySource interface {
	Summary(ctx context.Context, since time.Time) (activitydto.SummaryOutput, error)
}
