package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studysphere/internal/modules/state/domain"
	statein "studysphere/internal/modules/state/port/in"
	stateout "studysphere/internal/modules/state/port/out"
	"studysphere/internal/modules/state/service"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/logging"
)

type Store struct {
	svc     *service.StateService
	backend stateout.Backend
	logger  hclog.Logger

	mu     sync.Mutex
	state  domain.AppState
	loaded bool

	subsMu sync.Mutex
	nextID int
	subs   map[int]func(domain.AppState)
}

// NewStore returns an unloaded store. Call Load before handing it to hosts;
// until then Snapshot returns the seeded default.
func NewStore(svc *service.StateService, backend stateout.Backend, logger hclog.Logger) statein.Store {
	return &Store{
		svc:     svc,
		backend: backend,
		logger:  logging.OrDiscard(logger),
		subs:    map[int]func(domain.AppState){},
	}
}

// Load reads the persisted document. It never fails: a missing or corrupt
// document yields the default state.
func (s *Store) Load(ctx context.Context) domain.AppState {
	state := s.read(ctx)

	s.mu.Lock()
	s.state = state
	s.loaded = true
	snapshot := s.state.Clone()
	s.mu.Unlock()
	return snapshot
}

func (s *Store) read(ctx context.Context) domain.AppState {
	payload, err := s.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("no saved state, starting from defaults")
		} else {
			s.logger.Warn("read saved state failed, starting from defaults", "error", err)
		}
		return s.svc.Default()
	}
	if len(payload) == 0 {
		return s.svc.Default()
	}
	state, skipped, err := s.svc.Decode(payload)
	if err != nil {
		s.logger.Warn("saved state is unreadable, starting from defaults", "error", err)
		return s.svc.Default()
	}
	for _, field := range skipped {
		s.logger.Warn("ignored saved field", "field", field)
	}
	return state
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	s.ensureLoaded()
	snapshot := s.state.Clone()
	err := s.write(ctx, snapshot)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

func (s *Store) Snapshot() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.state.Clone()
}

// Mutate applies fn to a private copy, persists it and only then makes it
// current. fn errors and write errors leave the current state untouched.
func (s *Store) Mutate(ctx context.Context, fn func(*domain.AppState) error) error {
	s.mu.Lock()
	s.ensureLoaded()
	next := s.state.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	next.Normalize()
	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	fresh := s.svc.Default()
	return s.Mutate(ctx, func(state *domain.AppState) error {
		*state = fresh
		return nil
	})
}

func (s *Store) Badges() domain.Badges {
	return s.Snapshot().Badges()
}

func (s *Store) Subscribe(fn func(domain.AppState)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	key := s.nextID
	s.nextID++
	s.subs[key] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, key)
	}
}

func (s *Store) notify(snapshot domain.AppState) {
	s.subsMu.Lock()
	observers := make([]func(domain.AppState), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range observers {
		fn(snapshot.Clone())
	}
}

// ensureLoaded seeds the default state for stores used before Load. Callers
// hold s.mu.
func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.state = s.svc.Default()
	s.loaded = true
}

func (s *Store) write(ctx context.Context, state domain.AppState) error {
	payload, err := s.svc.Encode(state)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, payload); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
