package usecase

import (
	"context"
	"sort"

	"studysphere/internal/modules/state/domain"
	"studysphere/internal/modules/state/dto"
	statein "studysphere/internal/modules/state/port/in"
)

type Interactor struct {
	store statein.Store
}

func NewInteractor(store statein.Store) statein.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.store.Reset(ctx)
}

func (i *Interactor) Badges() dto.BadgesOutput {
	return toBadges(i.store.Badges())
}

func (i *Interactor) Summary() dto.SummaryOutput {
	snapshot := i.store.Snapshot()
	extra := make([]string, 0, len(snapshot.Extra))
	for key := range snapshot.Extra {
		extra = append(extra, key)
	}
	sort.Strings(extra)
	return dto.SummaryOutput{
		Theme:         string(snapshot.Theme),
		ActiveSection: string(snapshot.ActiveSection),
		Badges:        toBadges(snapshot.Badges()),
		Extra:         extra,
	}
}

func (i *Interactor) Subscribe(fn func(dto.BadgesOutput)) func() {
	return i.store.Subscribe(func(state domain.AppState) {
		fn(toBadges(state.Badges()))
	})
}

func toBadges(b domain.Badges) dto.BadgesOutput {
	return dto.BadgesOutput{
		OpenTasks:       b.OpenTasks,
		Notes:           b.Notes,
		OpenAssignments: b.OpenAssignments,
		Decks:           b.Decks,
		ActiveGoals:     b.ActiveGoals,
		Habits:          b.Habits,
	}
}
