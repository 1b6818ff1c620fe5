// Package tracker is the view model behind the order-tracking screen.
//
// A Tracker stores the current stage, the two transient flags and the review
// draft. Everything else (per-stage status, progress percentage, which controls
// are enabled) is derived in Snapshot so it can never drift from the source of
// truth.
//
// Transient effects are returned as Timer values rather than started here. The
// rendering layer schedules them on its own event loop and passes each one back to
// Fire when it expires. Every stage entry bumps a generation counter, so a timer
// armed for an earlier entry is dropped instead of touching a later state.
package tracker

import (
	"log/slog"
	"math"
	"time"

	"github.com/katistix/servicetrack/internal/catalog"
)

const (
	DefaultInitialStage        = 2
	DefaultCelebrationDuration = 4000 * time.Millisecond
	DefaultReviewDelay         = 2000 * time.Millisecond

	MinRating = 1
	MaxRating = 5
)

type options struct {
	initialStage        int
	celebrationDuration time.Duration
	reviewDelay         time.Duration
	logger              *slog.Logger
	ack                 Acknowledger
}

// Option configures a Tracker.
type Option func(*options)

// WithInitialStage sets the stage the screen opens on.
func WithInitialStage(id int) Option {
	return func(o *options) { o.initialStage = id }
}

// WithCelebrationDuration sets how long the celebration banner stays up.
func WithCelebrationDuration(d time.Duration) Option {
	return func(o *options) { o.celebrationDuration = d }
}

// WithReviewDelay sets how long after reaching the last stage the review prompt opens.
func WithReviewDelay(d time.Duration) Option {
	return func(o *options) { o.reviewDelay = d }
}

// WithLogger sets the logger used for transitions and acknowledgments.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAcknowledger sets where submitted reviews go. Defaults to logging them.
func WithAcknowledger(a Acknowledger) Option {
	return func(o *options) { o.ack = a }
}

// Tracker is the single mutable state of the screen. It is not safe for concurrent
// use; all calls are expected from one event loop.
type Tracker struct {
	catalog catalog.Catalog
	opts    options

	current            int
	celebrationVisible bool
	reviewVisible      bool
	rating             int
	feedback           string

	generation uint64
	started    bool
	closed     bool
}

// New creates a Tracker over c. The initial stage must be within the catalog.
func New(c catalog.Catalog, opts ...Option) (*Tracker, error) {
	o := options{
		initialStage:        DefaultInitialStage,
		celebrationDuration: DefaultCelebrationDuration,
		reviewDelay:         DefaultReviewDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.ack == nil {
		o.ack = logAcknowledger{logger: o.logger}
	}

	if c.Len() == 0 {
		return nil, violation("catalog is empty")
	}
	if o.initialStage < 1 || o.initialStage > c.Len() {
		return nil, violation("initial stage %d outside 1..%d", o.initialStage, c.Len())
	}
	if o.celebrationDuration < 0 || o.reviewDelay < 0 {
		return nil, violation("timer durations must not be negative")
	}

	return &Tracker{
		catalog: c,
		opts:    o,
		current: o.initialStage,
	}, nil
}

// Start mounts the screen and runs the entry effects of the initial stage.
// Calling it again is a no-op.
func (t *Tracker) Start() []Timer {
	if t.started || t.closed {
		return nil
	}
	t.started = true
	t.opts.logger.Debug("tracker started", "stage", t.current, "stages", t.catalog.Len())
	return t.enter()
}

// Close unmounts the screen. Timers armed before Close are dropped by Fire.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.generation++
	t.opts.logger.Debug("tracker closed", "stage", t.current)
}

// Advance moves to the next stage.
func (t *Tracker) Advance() ([]Timer, error) {
	if !t.CanAdvance() {
		return nil, violation("advance from stage %d of %d", t.current, t.catalog.Len())
	}
	t.current++
	t.opts.logger.Debug("stage advanced", "stage", t.current)
	return t.enter(), nil
}

// Retreat moves to the previous stage. It stays legal from the last stage.
func (t *Tracker) Retreat() ([]Timer, error) {
	if !t.CanRetreat() {
		return nil, violation("retreat from stage %d", t.current)
	}
	t.current--
	t.opts.logger.Debug("stage retreated", "stage", t.current)
	return t.enter(), nil
}

// CanAdvance reports whether Advance would succeed.
func (t *Tracker) CanAdvance() bool { return !t.closed && t.current < t.catalog.Len() }

// CanRetreat reports whether Retreat would succeed.
func (t *Tracker) CanRetreat() bool { return !t.closed && t.current > 1 }

// enter runs the effects of arriving at the current stage and returns the timers
// they arm. Any timer from a previous entry is invalidated first.
func (t *Tracker) enter() []Timer {
	t.generation++

	var timers []Timer
	if active := t.Active(); active.HasCelebration() {
		t.celebrationVisible = true
		timers = append(timers, Timer{Kind: TimerHideCelebration, Delay: t.opts.celebrationDuration, Generation: t.generation})
	} else {
		t.celebrationVisible = false
	}

	// reviewVisible is left as is when arriving elsewhere; the prompt only opens at
	// the last stage.
	if t.IsComplete() {
		timers = append(timers, Timer{Kind: TimerShowReview, Delay: t.opts.reviewDelay, Generation: t.generation})
	}
	return timers
}

// Fire applies an expired timer. It returns false and changes nothing when the
// timer belongs to an earlier stage entry or the tracker is closed.
func (t *Tracker) Fire(tm Timer) bool {
	if t.closed || tm.Generation != t.generation {
		t.opts.logger.Debug("stale timer dropped", "kind", tm.Kind.String(), "generation", tm.Generation, "current_generation", t.generation)
		return false
	}

	switch tm.Kind {
	case TimerHideCelebration:
		t.celebrationVisible = false
	case TimerShowReview:
		t.reviewVisible = true
	default:
		return false
	}
	t.opts.logger.Debug("timer fired", "kind", tm.Kind.String(), "stage", t.current)
	return true
}

// DismissCelebration hides the celebration banner before its timer runs out.
func (t *Tracker) DismissCelebration() {
	t.celebrationVisible = false
}

// SetRating sets the review draft rating.
func (t *Tracker) SetRating(n int) error {
	if n < MinRating || n > MaxRating {
		return violation("rating %d outside %d..%d", n, MinRating, MaxRating)
	}
	t.rating = n
	return nil
}

// SetFeedback replaces the review draft feedback.
func (t *Tracker) SetFeedback(text string) {
	t.feedback = text
}

// CanSubmit reports whether Submit would succeed.
func (t *Tracker) CanSubmit() bool { return t.rating != 0 }

// Submit hands the draft to the acknowledger, closes the prompt and clears the draft.
func (t *Tracker) Submit() (Review, error) {
	if !t.CanSubmit() {
		return Review{}, violation("submit without a rating")
	}
	r := Review{Rating: t.rating, Feedback: t.feedback}
	t.opts.ack.Acknowledge(r)
	t.reviewVisible = false
	t.clearDraft()
	return r, nil
}

// Dismiss closes the review prompt without submitting and discards the draft.
func (t *Tracker) Dismiss() {
	t.reviewVisible = false
	t.clearDraft()
}

func (t *Tracker) clearDraft() {
	t.rating = 0
	t.feedback = ""
}

// Current returns the current stage id.
func (t *Tracker) Current() int { return t.current }

// IsComplete reports whether the order is at the last stage.
func (t *Tracker) IsComplete() bool { return t.current >= t.catalog.Len() }

// Active returns the catalog entry for the current stage id. At the last stage this
// is the terminal stage even though its derived status is completed.
func (t *Tracker) Active() catalog.Stage {
	s, _ := t.catalog.Stage(t.current)
	return s
}

// CurrentStage returns the stage whose derived status is current, if any.
func (t *Tracker) CurrentStage() (catalog.Stage, bool) {
	n := t.catalog.Len()
	return t.catalog.Find(func(s catalog.Stage) bool {
		return StatusOf(s.ID, t.current, n) == StatusCurrent
	})
}

// StageView pairs a stage with its derived status.
type StageView struct {
	Stage  catalog.Stage
	Status Status
}

// View is a read-only projection of the tracker for rendering.
type View struct {
	CurrentStage int
	Total        int
	Percent      int
	Stages       []StageView
	Active       catalog.Stage
	Complete     bool

	CelebrationVisible bool
	CelebrationMessage string

	// ReviewPromptVisible is the raw flag; ReviewModalOpen is what should be drawn.
	ReviewPromptVisible bool
	ReviewModalOpen     bool
	Rating              int
	Feedback            string

	CanAdvance bool
	CanRetreat bool
	CanSubmit  bool
}

// Snapshot derives the current view.
func (t *Tracker) Snapshot() View {
	n := t.catalog.Len()
	stages := t.catalog.Stages()
	views := make([]StageView, len(stages))
	for i, s := range stages {
		views[i] = StageView{Stage: s, Status: StatusOf(s.ID, t.current, n)}
	}

	active := t.Active()
	v := View{
		CurrentStage:        t.current,
		Total:               n,
		Percent:             int(math.Round(float64(t.current) / float64(n) * 100)),
		Stages:              views,
		Active:              active,
		Complete:            t.IsComplete(),
		CelebrationVisible:  t.celebrationVisible && active.HasCelebration(),
		ReviewPromptVisible: t.reviewVisible,
		ReviewModalOpen:     t.reviewVisible && t.IsComplete(),
		Rating:              t.rating,
		Feedback:            t.feedback,
		CanAdvance:          t.CanAdvance(),
		CanRetreat:          t.CanRetreat(),
		CanSubmit:           t.CanSubmit(),
	}
	if v.CelebrationVisible {
		v.CelebrationMessage = active.CelebrationMessage
	}
	return v
}
