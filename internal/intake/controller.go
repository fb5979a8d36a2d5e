package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotLastStep     = errors.New("intake can only be completed from the last step")
	ErrStepIncomplete  = errors.New("current step is incomplete")
	ErrSaveInFlight    = errors.New("profile save already in progress")
	ErrUnknownSection  = errors.New("unknown profile section")
	ErrSectionMismatch = errors.New("section value has the wrong type")
)

// ProfileStore is the durable store the controller writes through to.
// Load returns storage.ErrProfileAbsent when nothing usable is stored.
type ProfileStore interface {
	Save(ctx context.Context, userID string, profile *entity.Profile) error
	Load(ctx context.Context, userID string) (*entity.Profile, error)
}

// Saver submits a completed profile to the remote collaborator.
type Saver interface {
	SaveProfile(ctx context.Context, userID string, profile *entity.Profile) SaveOutcome
}

// Observer receives transition and completion events. Implementations must
// be safe for concurrent use.
type Observer interface {
	ObserveTransition(kind string, moved bool)
	ObserveCompletion(status SaveStatus)
}

// Transition kinds reported to the Observer.
const (
	TransitionJump    = "jump"
	TransitionAdvance = "advance"
	TransitionRetreat = "retreat"
)

type Option func(*Controller)

// WithObserver attaches an Observer to the controller.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// Controller owns one user's (profile, current step) pair and mediates every
// transition of the intake flow.
type Controller struct {
	mu        sync.Mutex
	userID    string
	profile   *entity.Profile
	current   Step
	completed bool
	saving    bool

	store    ProfileStore
	saver    Saver
	observer Observer
	log      *logrus.Logger
}

// State is a consistent copy of a controller's state.
type State struct {
	UserID      string          `json:"user_id"`
	Profile     *entity.Profile `json:"profile"`
	CurrentStep Step            `json:"current_step"`
	Validity    [StepCount]bool `json:"validity"`
	Progress    []StepIndicator `json:"progress"`
	Completed   bool            `json:"completed"`
	Saving      bool            `json:"saving"`
}

// NewController hydrates the user's profile from store. A missing or
// unreadable profile starts empty on the first step; a stored profile resumes
// at its first incomplete step. Store failures are returned.
func NewController(ctx context.Context, userID string, store ProfileStore, saver Saver, log *logrus.Logger, opts ...Option) (*Controller, error) {
	c := &Controller{
		userID: userID,
		store:  store,
		saver:  saver,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}

	profile, err := store.Load(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrProfileAbsent):
		c.profile = entity.NewProfile()
		c.current = StepPersonalDetails
	case err != nil:
		return nil, fmt.Errorf("intake: load profile for %s: %w", userID, err)
	default:
		profile.Normalize()
		c.profile = profile
		c.current = ResumePoint(profile)
	}

	c.log.Debugf("Intake session for %s resumes at step %d", userID, c.current)
	return c, nil
}

// UserID returns the owner of this session.
func (c *Controller) UserID() string {
	return c.userID
}

// UpdateSection replaces a whole top-level section. value must be an
// entity.PersonalDetails or entity.MedicalHistory (or a pointer to one)
// matching section.
func (c *Controller) UpdateSection(ctx context.Context, section string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.profile.Clone()
	switch section {
	case entity.SectionPersonalDetails:
		switch v := value.(type) {
		case entity.PersonalDetails:
			next.PersonalDetails = v
		case *entity.PersonalDetails:
			next.PersonalDetails = *v
		default:
			return fmt.Errorf("%w: %s got %T", ErrSectionMismatch, section, value)
		}
	case entity.SectionMedicalHistory:
		switch v := value.(type) {
		case entity.MedicalHistory:
			next.MedicalHistory = v
		case *entity.MedicalHistory:
			next.MedicalHistory = *v
		default:
			return fmt.Errorf("%w: %s got %T", ErrSectionMismatch, section, value)
		}
		// The caller's lists must not alias ours.
		next = next.Clone()
		next.Normalize()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}

	return c.commit(ctx, next)
}

// Apply reduces a field update message into the profile and writes it through.
func (c *Controller) Apply(ctx context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Reduce(c.profile, msg)
	if err != nil {
		return err
	}
	return c.commit(ctx, next)
}

// LoadDemo replaces the entire profile with demo profile i in one step.
func (c *Controller) LoadDemo(ctx context.Context, i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.commit(ctx, DemoProfile(i))
}

// commit persists next and only then makes it the current profile, so the
// in-memory state never runs ahead of the store. Caller holds c.mu.
func (c *Controller) commit(ctx context.Context, next *entity.Profile) error {
	if err := c.store.Save(ctx, c.userID, next); err != nil {
		c.log.Warnf("Failed to persist intake profile for %s: %+v", c.userID, err)
		return fmt.Errorf("intake: persist profile: %w", err)
	}
	c.profile = next
	return nil
}

// GoToStep moves to step j when j is not ahead of the current step or when
// j's own validator passes. Intervening steps are not checked. Unreachable
// targets are ignored and reported as false.
func (c *Controller) GoToStep(j Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	moved := c.goTo(j)
	c.observe(TransitionJump, moved)
	return moved
}

func (c *Controller) goTo(j Step) bool {
	if !j.Valid() {
		return false
	}
	if j > c.current && !IsStepValid(c.profile, j) {
		return false
	}
	c.current = j
	return true
}

// Advance moves to the next step when the current step's validator passes.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	moved := false
	if c.current < LastStep && IsStepValid(c.profile, c.current) {
		c.current++
		moved = true
	}
	c.observe(TransitionAdvance, moved)
	return moved
}

// Retreat moves to the previous step unless already on the first one.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	moved := c.current > StepPersonalDetails && c.goTo(c.current-1)
	c.observe(TransitionRetreat, moved)
	return moved
}

// Complete submits the profile to the Saver. It is only allowed from the
// last step with that step valid, and rejects a second call while a save is
// in flight. The profile stays in the store whatever the outcome, so a
// failed save can be retried.
func (c *Controller) Complete(ctx context.Context) (SaveOutcome, error) {
	c.mu.Lock()
	if c.current != LastStep {
		c.mu.Unlock()
		return SaveOutcome{}, ErrNotLastStep
	}
	if !IsStepValid(c.profile, LastStep) {
		c.mu.Unlock()
		return SaveOutcome{}, ErrStepIncomplete
	}
	if c.saving {
		c.mu.Unlock()
		return SaveOutcome{}, ErrSaveInFlight
	}
	c.saving = true
	snapshot := c.profile.Clone()
	c.mu.Unlock()

	outcome := c.saver.SaveProfile(ctx, c.userID, snapshot)

	c.mu.Lock()
	c.saving = false
	if outcome.Succeeded() {
		c.completed = true
		c.log.Infof("Intake completed for %s", c.userID)
	} else {
		c.log.Warnf("Intake save failed for %s: %s", c.userID, outcome.Reason)
	}
	c.mu.Unlock()

	if c.observer != nil {
		c.observer.ObserveCompletion(outcome.Status)
	}
	return outcome, nil
}

// CurrentStep returns the active step.
func (c *Controller) CurrentStep() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Saving reports whether a Complete call is in flight.
func (c *Controller) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Snapshot returns a copy of the controller state with validity re-derived
// from the current profile.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	validity := Validity(c.profile)
	return State{
		UserID:      c.userID,
		Profile:     c.profile.Clone(),
		CurrentStep: c.current,
		Validity:    validity,
		Progress:    Progress(c.current, validity),
		Completed:   c.completed,
		Saving:      c.saving,
	}
}

func (c *Controller) observe(kind string, moved bool) {
	if c.observer != nil {
		c.observer.ObserveTransition(kind, moved)
	}
	c.log.Debugf("Intake %s for %s: moved=%t step=%d", kind, c.userID, moved, c.current)
}
