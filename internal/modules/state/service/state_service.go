package service

import (
	"encoding/json"
	"fmt"

	"studysphere/internal/modules/state/domain"
	"studysphere/internal/platform/clock"
	"studysphere/internal/platform/id"
)

// StateService owns the document format: seeding, merging and encoding.
type StateService struct {
	clock clock.Clock
	ids   id.Generator
}

func NewStateService(clock clock.Clock, ids id.Generator) *StateService {
	return &StateService{clock: clock, ids: ids}
}

func (s *StateService) Default() domain.AppState {
	return domain.Default(s.clock.Now(), s.ids.New)
}

// Decode merges payload over a freshly seeded default.
func (s *StateService) Decode(payload []byte) (domain.AppState, []string, error) {
	merged, skipped, err := domain.Merge(s.Default(), payload)
	if err != nil {
		return domain.AppState{}, nil, err
	}
	return merged, skipped, nil
}

func (s *StateService) Encode(state domain.AppState) ([]byte, error) {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return payload, nil
}
