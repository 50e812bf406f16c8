package service

import (
	"context"
	"fmt"
	"time"

	"studysphere/internal/modules/activity/domain"
	activityout "studysphere/internal/modules/activity/port/out"
	"studysphere/internal/platform/clock"
	"studysphere/internal/platform/id"
)

type ActivityService struct {
	clock clock.Clock
	ids   id.Generator
	log   activityout.Log
}

func NewActivityService(clock clock.Clock, ids id.Generator, log activityout.Log) *ActivityService {
	return &ActivityService{clock: clock, ids: ids, log: log}
}

func (s *ActivityService) Record(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	entry.ID = s.ids.New()
	entry.At = s.clock.Now()
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("record activity: %w", err)
	}
	if err := s.log.Append(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *ActivityService) Summary(ctx context.Context, since time.Time) (domain.Summary, error) {
	entries, err := s.log.Since(ctx, since)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(entries), nil
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.log.Recent(ctx, limit)
}
