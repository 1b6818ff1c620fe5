package tracker

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katistix/servicetrack/internal/catalog"
)

func newTracker(t *testing.T, opts ...Option) *Tracker {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	tr, err := New(catalog.Default(), opts...)
	require.NoError(t, err)
	return tr
}

func statuses(v View) []Status {
	out := make([]Status, len(v.Stages))
	for i, s := range v.Stages {
		out[i] = s.Status
	}
	return out
}

func timerOf(timers []Timer, kind TimerKind) (Timer, bool) {
	for _, tm := range timers {
		if tm.Kind == kind {
			return tm, true
		}
	}
	return Timer{}, false
}

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name        string
		id, current int
		want        Status
	}{
		{"before current", 1, 2, StatusCompleted},
		{"at current", 2, 2, StatusCurrent},
		{"after current", 3, 2, StatusPending},
		{"terminal pending", 5, 4, StatusPending},
		{"terminal reached", 5, 5, StatusCompleted},
		{"penultimate at terminal", 4, 5, StatusCompleted},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(tc.id, tc.current, 5))
		})
	}
}

func TestExactlyOneCurrentBeforeTerminal(t *testing.T) {
	for current := 1; current <= 5; current++ {
		tr := newTracker(t, WithInitialStage(current))
		count := 0
		for _, s := range tr.Snapshot().Stages {
			if s.Status == StatusCurrent {
				count++
			}
		}
		if current < 5 {
			assert.Equal(t, 1, count, "stage %d", current)
			cur, ok := tr.CurrentStage()
			require.True(t, ok)
			assert.Equal(t, current, cur.ID)
		} else {
			assert.Equal(t, 0, count)
			_, ok := tr.CurrentStage()
			assert.False(t, ok)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(catalog.Default(), WithInitialStage(0))
	assert.True(t, errors.Is(err, ErrPreconditionViolation))

	_, err = New(catalog.Default(), WithInitialStage(6))
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = New(catalog.Default(), WithReviewDelay(-time.Second))
	assert.ErrorIs(t, err, ErrPreconditionViolation)

	_, err = New(catalog.Catalog{})
	assert.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestDefaults(t *testing.T) {
	tr := newTracker(t)
	assert.Empty(t, tr.Start())

	v := tr.Snapshot()
	assert.Equal(t, 2, v.CurrentStage)
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 40, v.Percent)
	assert.Equal(t, "Technician Assigned", v.Active.Title)
	assert.False(t, v.CelebrationVisible)
	assert.False(t, v.ReviewPromptVisible)
	assert.True(t, v.CanAdvance)
	assert.True(t, v.CanRetreat)
	assert.False(t, v.CanSubmit)
}

func TestStartRunsEntryEffectsOnce(t *testing.T) {
	tr := newTracker(t, WithInitialStage(4))
	timers := tr.Start()
	require.Len(t, timers, 1)
	assert.Equal(t, TimerHideCelebration, timers[0].Kind)
	assert.True(t, tr.Snapshot().CelebrationVisible)

	assert.Nil(t, tr.Start())
}

func TestAdvanceToCompletion(t *testing.T) {
	tr := newTracker(t)
	tr.Start()

	var timers []Timer
	for i := 0; i < 3; i++ {
		var err error
		timers, err = tr.Advance()
		require.NoError(t, err)
	}

	v := tr.Snapshot()
	assert.Equal(t, 5, v.CurrentStage)
	assert.Equal(t, 100, v.Percent)
	assert.True(t, v.Complete)
	for _, s := range statuses(v) {
		assert.Equal(t, StatusCompleted, s)
	}
	assert.False(t, v.ReviewPromptVisible)

	review, ok := timerOf(timers, TimerShowReview)
	require.True(t, ok)
	assert.Equal(t, 2000*time.Millisecond, review.Delay)
	assert.True(t, tr.Fire(review))

	v = tr.Snapshot()
	assert.True(t, v.ReviewPromptVisible)
	assert.True(t, v.ReviewModalOpen)
}

func TestAdvanceAtTerminalIsGuarded(t *testing.T) {
	tr := newTracker(t, WithInitialStage(5))
	tr.Start()
	before := tr.Snapshot()

	timers, err := tr.Advance()
	assert.ErrorIs(t, err, ErrPreconditionViolation)
	assert.Nil(t, timers)
	assert.Equal(t, before, tr.Snapshot())
	assert.False(t, tr.Snapshot().CanAdvance)
}

func TestRetreatToFirst(t *testing.T) {
	tr := newTracker(t)
	tr.Start()

	timers, err := tr.Retreat()
	require.NoError(t, err)
	assert.Empty(t, timers)

	v := tr.Snapshot()
	assert.Equal(t, 1, v.CurrentStage)
	assert.Equal(t, []Status{StatusCurrent, StatusPending, StatusPending, StatusPending, StatusPending}, statuses(v))
	assert.False(t, v.CanRetreat)

	_, err = tr.Retreat()
	assert.ErrorIs(t, err, ErrPreconditionViolation)
	assert.Equal(t, 1, tr.Current())
}

func TestCelebrationAutoHide(t *testing.T) {
	tr := newTracker(t, WithInitialStage(3))
	tr.Start()

	timers, err := tr.Advance()
	require.NoError(t, err)

	v := tr.Snapshot()
	assert.True(t, v.CelebrationVisible)
	assert.Equal(t, "🎉 Hurray! Today is the day your service gets completed!", v.CelebrationMessage)

	hide, ok := timerOf(timers, TimerHideCelebration)
	require.True(t, ok)
	assert.Equal(t, 4000*time.Millisecond, hide.Delay)
	_, ok = timerOf(timers, TimerShowReview)
	assert.False(t, ok)

	assert.True(t, tr.Fire(hide))
	v = tr.Snapshot()
	assert.False(t, v.CelebrationVisible)
	assert.Empty(t, v.CelebrationMessage)
}

func TestStaleCelebrationTimerIsDropped(t *testing.T) {
	tr := newTracker(t, WithInitialStage(3))
	tr.Start()

	first, err := tr.Advance()
	require.NoError(t, err)
	second, err := tr.Advance()
	require.NoError(t, err)

	oldHide, _ := timerOf(first, TimerHideCelebration)
	newHide, ok := timerOf(second, TimerHideCelebration)
	require.True(t, ok)

	assert.False(t, tr.Fire(oldHide))
	v := tr.Snapshot()
	assert.True(t, v.CelebrationVisible)
	assert.Equal(t, "🎉 Congratulations! Your service has been completed successfully!", v.CelebrationMessage)

	assert.True(t, tr.Fire(newHide))
	assert.False(t, tr.Snapshot().CelebrationVisible)
}

func TestLeavingCelebrationStageHidesBanner(t *testing.T) {
	tr := newTracker(t, WithInitialStage(4))
	timers := tr.Start()
	require.True(t, tr.Snapshot().CelebrationVisible)

	_, err := tr.Retreat()
	require.NoError(t, err)
	assert.False(t, tr.Snapshot().CelebrationVisible)

	assert.False(t, tr.Fire(timers[0]))
}

func TestReviewTimerRearmedOnReentry(t *testing.T) {
	tr := newTracker(t, WithInitialStage(4))
	tr.Start()

	first, err := tr.Advance()
	require.NoError(t, err)
	_, err = tr.Retreat()
	require.NoError(t, err)
	second, err := tr.Advance()
	require.NoError(t, err)

	oldShow, _ := timerOf(first, TimerShowReview)
	newShow, ok := timerOf(second, TimerShowReview)
	require.True(t, ok)
	assert.NotEqual(t, oldShow.Generation, newShow.Generation)

	assert.False(t, tr.Fire(oldShow))
	assert.False(t, tr.Snapshot().ReviewPromptVisible)
	assert.True(t, tr.Fire(newShow))
	assert.True(t, tr.Snapshot().ReviewPromptVisible)
}

func TestReviewFlagSurvivesRetreat(t *testing.T) {
	tr := newTracker(t, WithInitialStage(5))
	timers := tr.Start()
	show, _ := timerOf(timers, TimerShowReview)
	require.True(t, tr.Fire(show))

	_, err := tr.Retreat()
	require.NoError(t, err)

	v := tr.Snapshot()
	assert.True(t, v.ReviewPromptVisible)
	assert.False(t, v.ReviewModalOpen)
}

func TestSubmitReview(t *testing.T) {
	var got []Review
	tr := newTracker(t,
		WithInitialStage(5),
		WithAcknowledger(AcknowledgerFunc(func(r Review) { got = append(got, r) })),
	)
	timers := tr.Start()
	show, _ := timerOf(timers, TimerShowReview)
	require.True(t, tr.Fire(show))

	require.NoError(t, tr.SetRating(4))
	tr.SetFeedback("Great job")
	assert.True(t, tr.Snapshot().CanSubmit)

	r, err := tr.Submit()
	require.NoError(t, err)
	assert.Equal(t, Review{Rating: 4, Feedback: "Great job"}, r)
	assert.Equal(t, []Review{{Rating: 4, Feedback: "Great job"}}, got)

	v := tr.Snapshot()
	assert.False(t, v.ReviewPromptVisible)
	assert.Zero(t, v.Rating)
	assert.Empty(t, v.Feedback)
}

func TestSubmitWithoutRating(t *testing.T) {
	called := false
	tr := newTracker(t, WithAcknowledger(AcknowledgerFunc(func(Review) { called = true })))

	tr.SetFeedback("no stars")
	_, err := tr.Submit()
	assert.ErrorIs(t, err, ErrPreconditionViolation)
	assert.False(t, called)
	assert.Equal(t, "no stars", tr.Snapshot().Feedback)
}

func TestSetRatingRange(t *testing.T) {
	tr := newTracker(t)
	assert.ErrorIs(t, tr.SetRating(0), ErrPreconditionViolation)
	assert.ErrorIs(t, tr.SetRating(6), ErrPreconditionViolation)
	require.NoError(t, tr.SetRating(5))
	require.NoError(t, tr.SetRating(2))
	assert.Equal(t, 2, tr.Snapshot().Rating)
}

func TestDismissDiscardsDraft(t *testing.T) {
	called := false
	tr := newTracker(t, WithInitialStage(5), WithAcknowledger(AcknowledgerFunc(func(Review) { called = true })))
	timers := tr.Start()
	show, _ := timerOf(timers, TimerShowReview)
	tr.Fire(show)

	require.NoError(t, tr.SetRating(3))
	tr.SetFeedback("meh")
	tr.Dismiss()

	v := tr.Snapshot()
	assert.False(t, v.ReviewPromptVisible)
	assert.Zero(t, v.Rating)
	assert.Empty(t, v.Feedback)
	assert.False(t, called)
}

func TestDismissCelebration(t *testing.T) {
	tr := newTracker(t, WithInitialStage(4))
	timers := tr.Start()
	tr.DismissCelebration()
	assert.False(t, tr.Snapshot().CelebrationVisible)

	// The pending auto-hide still matches the generation and is harmless.
	assert.True(t, tr.Fire(timers[0]))
	assert.False(t, tr.Snapshot().CelebrationVisible)
}

func TestCloseInvalidatesTimers(t *testing.T) {
	tr := newTracker(t, WithInitialStage(5))
	timers := tr.Start()
	tr.Close()

	for _, tm := range timers {
		assert.False(t, tr.Fire(tm))
	}
	v := tr.Snapshot()
	assert.False(t, v.ReviewPromptVisible)
	assert.False(t, v.CanAdvance)
	assert.False(t, v.CanRetreat)
	assert.Nil(t, tr.Start())
}

func TestCustomDurations(t *testing.T) {
	tr := newTracker(t,
		WithInitialStage(5),
		WithCelebrationDuration(time.Second),
		WithReviewDelay(250*time.Millisecond),
	)
	timers := tr.Start()

	hide, ok := timerOf(timers, TimerHideCelebration)
	require.True(t, ok)
	assert.Equal(t, time.Second, hide.Delay)
	show, ok := timerOf(timers, TimerShowReview)
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, show.Delay)
}

func TestPercentRounding(t *testing.T) {
	stages := []catalog.Stage{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"}}
	c, err := catalog.New(stages)
	require.NoError(t, err)

	tr, err := New(c, WithInitialStage(1), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	assert.Equal(t, 33, tr.Snapshot().Percent)

	_, err = tr.Advance()
	require.NoError(t, err)
	assert.Equal(t, 67, tr.Snapshot().Percent)
}
