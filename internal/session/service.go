package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Seednode/cluebox/internal/apperror"
)

// ErrNotFound indicates no session exists for the requested id.
var ErrNotFound = errors.New("session not found")

// Repository is the two-operation storage abstraction sessions are
// persisted through. Load returns ErrNotFound for a missing id; corrupt or
// unreadable data is a hard failure, never a silent miss.
type Repository interface {
	Save(ctx context.Context, id string, s Session) error
	Load(ctx context.Context, id string) (Session, error)
}

// Timer is a cancelable pending callback.
type Timer interface {
	// Stop cancels the callback. It reports false when the callback has
	// already fired or been stopped.
	Stop() bool
}

// Scheduler schedules callbacks after a delay. Injected so tests can drive
// the debounce logic without wall-clock waits.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// WallScheduler schedules on the real clock.
type WallScheduler struct{}

func (WallScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// DefaultSaveDelay is the debounce window collapsing bursts of rapid
// mutations into a single write.
const DefaultSaveDelay = 300 * time.Millisecond

// Service persists sessions with per-id debouncing. Saves for a given id
// collapse to last-write-wins within the delay window; a forced save
// cancels any pending write, supersedes any flush already in flight, and
// commits immediately, so the forced state is always the one that lands.
type Service struct {
	repo      Repository
	scheduler Scheduler
	delay     time.Duration
	errs      *apperror.Service

	mu     sync.Mutex
	timers map[string]Timer
	// gens orders writes per id: every scheduled or forced save bumps the
	// generation, and a flush whose generation is no longer current skips
	// its write instead of clobbering a newer one.
	gens   map[string]uint64
	writes map[string]*sync.Mutex
}

// NewService creates a persistence service over repo. A nil scheduler uses
// the wall clock, a non-positive delay uses DefaultSaveDelay, and a nil
// error service gets a fresh one with the log telemetry sink.
func NewService(repo Repository, scheduler Scheduler, delay time.Duration, errs *apperror.Service) *Service {
	if scheduler == nil {
		scheduler = WallScheduler{}
	}
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	if errs == nil {
		errs = apperror.NewService(nil)
	}
	return &Service{
		repo:      repo,
		scheduler: scheduler,
		delay:     delay,
		errs:      errs,
		timers:    make(map[string]Timer),
		gens:      make(map[string]uint64),
		writes:    make(map[string]*sync.Mutex),
	}
}

// writeLock returns the mutex serializing repository writes for id.
func (svc *Service) writeLock(id string) *sync.Mutex {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	lock, ok := svc.writes[id]
	if !ok {
		lock = &sync.Mutex{}
		svc.writes[id] = lock
	}
	return lock
}

// DebouncedSave schedules s to be written after the delay window, replacing
// any save already pending for the same id. A write that eventually fails
// is reported to the error service but not raised: the mutation that
// triggered it has already returned.
func (svc *Service) DebouncedSave(id string, s Session) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if t, ok := svc.timers[id]; ok {
		t.Stop()
	}
	svc.gens[id]++
	gen := svc.gens[id]
	svc.timers[id] = svc.scheduler.Schedule(svc.delay, func() {
		svc.flush(id, s, gen)
	})
}

func (svc *Service) flush(id string, s Session, gen uint64) {
	lock := svc.writeLock(id)
	lock.Lock()
	defer lock.Unlock()

	svc.mu.Lock()
	superseded := svc.gens[id] != gen
	if !superseded {
		delete(svc.timers, id)
	}
	svc.mu.Unlock()
	if superseded {
		return
	}

	if err := svc.repo.Save(context.Background(), id, s); err != nil {
		svc.errs.Report(apperror.NewPersistenceError(apperror.CodePersistenceSaveFailed,
			"debounced save of session "+id+" failed: "+err.Error()).WithCause(err))
	}
}

// ForceSave cancels any pending debounced save for the id, supersedes any
// flush already in flight, and writes immediately, propagating failure so
// the caller can block navigation or retry. Used before leaving an active
// session. The per-id write lock means a flush that already reached the
// repository finishes first and the forced state lands after it.
func (svc *Service) ForceSave(ctx context.Context, id string, s Session) error {
	svc.mu.Lock()
	if t, ok := svc.timers[id]; ok {
		t.Stop()
		delete(svc.timers, id)
	}
	svc.gens[id]++
	svc.mu.Unlock()

	lock := svc.writeLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := svc.repo.Save(ctx, id, s); err != nil {
		typed := apperror.NewPersistenceError(apperror.CodePersistenceSaveFailed,
			"save of session "+id+" failed: "+err.Error()).WithCause(err)
		svc.errs.Report(typed)
		return typed
	}
	return nil
}

// Load reads a session by id. A missing id surfaces ErrNotFound; anything
// else is a typed persistence failure from the repository.
func (svc *Service) Load(ctx context.Context, id string) (Session, error) {
	return svc.repo.Load(ctx, id)
}

// ClearTimers cancels every pending save. Called on teardown so no write
// fires after the consuming context is gone.
func (svc *Service) ClearTimers() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for id, t := range svc.timers {
		t.Stop()
		svc.gens[id]++
		delete(svc.timers, id)
	}
}
