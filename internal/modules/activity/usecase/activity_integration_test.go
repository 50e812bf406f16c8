package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	activityout "studysphere/internal/modules/activity/adapter/out"
	"studysphere/internal/modules/activity/dto"
	"studysphere/internal/modules/activity/service"
	"studysphere/internal/modules/activity/usecase"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/id"
)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	current := c.now
	c.now = c.now.Add(c.step)
	return current
}

func TestActivityLogSummaryAndRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log, err := activityout.NewSQLiteLog(filepath.Join(t.TempDir(), "db", "sphere.db"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	clk := &stepClock{now: start, step: time.Hour}
	uc := usecase.NewInteractor(service.NewActivityService(clk, id.UUIDv7{}, log))

	if err := uc.RecordFocus(ctx, dto.FocusInput{Mode: "focus", Minutes: 25}); err != nil {
		t.Fatalf("record focus: %v", err)
	}
	if err := uc.RecordQuiz(ctx, dto.QuizInput{DeckName: "Bio", Correct: 3, Total: 4, Score: 75}); err != nil {
		t.Fatalf("record quiz: %v", err)
	}
	if err := uc.RecordFocus(ctx, dto.FocusInput{Mode: "focus", Minutes: 50}); err != nil {
		t.Fatalf("record focus: %v", err)
	}

	all, err := uc.Summary(ctx, start)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if all.FocusSessions != 2 || all.FocusMinutes != 75 || all.QuizSessions != 1 || all.AverageScore != 75 {
		t.Fatalf("unexpected summary: %+v", all)
	}

	later, err := uc.Summary(ctx, start.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if later.FocusSessions != 1 || later.QuizSessions != 0 {
		t.Fatalf("expected only the last entry, got %+v", later)
	}

	recent, err := uc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Minutes != 50 || recent[1].Kind != "quiz" {
		t.Fatalf("expected newest first, got %+v", recent)
	}
	if recent[0].ID == recent[1].ID || recent[0].ID == "" {
		t.Fatalf("expected distinct ids, got %q and %q", recent[0].ID, recent[1].ID)
	}
}

func TestRecordRejectsInvalidResults(t *testing.T) {
	t.Parallel()
	log, err := activityout.NewSQLiteLog(filepath.Join(t.TempDir(), "sphere.db"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	uc := usecase.NewInteractor(service.NewActivityService(&stepClock{now: time.Now()}, id.UUIDv7{}, log))
	if err := uc.RecordQuiz(context.Background(), dto.QuizInput{Correct: 1, Total: 0}); err == nil {
		t.Fatalf("expected invalid quiz to be rejected")
	}
	if err := uc.RecordFocus(context.Background(), dto.FocusInput{Minutes: 0}); err == nil {
		t.Fatalf("expected zero-minute focus to be rejected")
	}
	if _, err := uc.Recent(context.Background(), -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRecentDefaultsToTenEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log, err := activityout.NewSQLiteLog(filepath.Join(t.TempDir(), "sphere.db"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	uc := usecase.NewInteractor(service.NewActivityService(&stepClock{now: time.Now(), step: time.Second}, id.UUIDv7{}, log))
	for i := 0; i < 12; i++ {
		if err := uc.RecordFocus(ctx, dto.FocusInput{Mode: fmt.Sprintf("focus-%d", i), Minutes: 1}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	recent, err := uc.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 10 || recent[0].Label != "focus-11" {
		t.Fatalf("expected ten newest entries, got %d starting with %q", len(recent), recent[0].Label)
	}
}
