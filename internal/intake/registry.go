package intake

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval between sweeps for idle sessions
	sessionCleanupInterval = time.Minute

	// Default idle time before a session is dropped from memory
	defaultSessionIdle = 30 * time.Minute
)

// Registry keeps one Controller per user in memory.
//
// Sessions are hydrated from the ProfileStore on first use and evicted after
// sitting idle; an evicted user is rehydrated at the resume point on the next
// request. Call Stop() during graceful shutdown.
type Registry struct {
	store    ProfileStore
	saver    Saver
	log      *logrus.Logger
	opts     []Option
	idle     time.Duration
	now      func() time.Time
	sessions sync.Map // map[string]*session

	// serializes hydration so two requests never build two controllers for one user
	createMu sync.Mutex

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// session tracks controller usage for cleanup
type session struct {
	ctrl     *Controller
	lastUsed atomic.Int64 // Unix nanoseconds
}

// NewRegistry creates a Registry and starts its cleanup goroutine.
// idle <= 0 uses the default idle timeout.
func NewRegistry(store ProfileStore, saver Saver, log *logrus.Logger, idle time.Duration, opts ...Option) *Registry {
	if idle <= 0 {
		idle = defaultSessionIdle
	}
	r := &Registry{
		store:    store,
		saver:    saver,
		log:      log,
		opts:     opts,
		idle:     idle,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop()

	return r
}

// Get returns the user's controller, hydrating it on first use.
func (r *Registry) Get(ctx context.Context, userID string) (*Controller, error) {
	if s, ok := r.sessions.Load(userID); ok {
		sess := s.(*session)
		sess.lastUsed.Store(r.now().UnixNano())
		return sess.ctrl, nil
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	// Another request may have hydrated it while we waited.
	if s, ok := r.sessions.Load(userID); ok {
		sess := s.(*session)
		sess.lastUsed.Store(r.now().UnixNano())
		return sess.ctrl, nil
	}

	ctrl, err := NewController(ctx, userID, r.store, r.saver, r.log, r.opts...)
	if err != nil {
		return nil, err
	}

	sess := &session{ctrl: ctrl}
	sess.lastUsed.Store(r.now().UnixNano())
	r.sessions.Store(userID, sess)
	return ctrl, nil
}

// Evict drops the user's session from memory. Stored data is untouched.
func (r *Registry) Evict(userID string) {
	r.sessions.Delete(userID)
}

// Len returns the number of sessions held in memory.
func (r *Registry) Len() int {
	n := 0
	r.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stop gracefully shuts down the cleanup loop.
// Safe to call multiple times.
func (r *Registry) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()
		r.log.Info("Intake registry stopped")
	}
}

func (r *Registry) cleanupLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.evictIdle()
		}
	}
}

// evictIdle removes sessions idle for longer than r.idle. Sessions with a
// save in flight are kept.
func (r *Registry) evictIdle() int {
	threshold := r.now().Add(-r.idle).UnixNano()
	evicted := 0

	r.sessions.Range(func(key, value any) bool {
		sess := value.(*session)
		if sess.lastUsed.Load() < threshold && !sess.ctrl.Saving() {
			r.sessions.Delete(key)
			evicted++
		}
		return true
	})

	if evicted > 0 {
		r.log.Debugf("Evicted %d idle intake sessions", evicted)
	}
	return evicted
}
