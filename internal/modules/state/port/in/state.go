package in

import (
	"context"

	"studysphere/internal/modules/state/domain"
	"studysphere/internal/modules/state/dto"
)

// Store is the only owner of the persisted AppState. Other modules read
// snapshots and change state exclusively through Mutate.
type Store interface {
	Load(ctx context.Context) domain.AppState
	Save(ctx context.Context) error
	Snapshot() domain.AppState
	Mutate(ctx context.Context, fn func(*domain.AppState) error) error
	Subscribe(fn func(domain.AppState)) (cancel func())
	Reset(ctx context.Context) error
	Badges() domain.Badges
}

// Usecase is the host-facing surface of the store.
type Usecase interface {
	Reset(ctx context.Context) error
	Badges() dto.BadgesOutput
	Summary() dto.SummaryOutput
	Subscribe(fn func(dto.BadgesOutput)) (cancel func())
}
