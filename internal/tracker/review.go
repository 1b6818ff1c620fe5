package tracker

import (
	"context"
	"log/slog"
)

// Review is a submitted rating with its optional feedback.
type Review struct {
	Rating   int
	Feedback string
}

// Acknowledger receives a submitted review. It is called synchronously from Submit;
// nothing is retained after it returns.
type Acknowledger interface {
	Acknowledge(Review)
}

// AcknowledgerFunc adapts a function to Acknowledger.
type AcknowledgerFunc func(Review)

func (f AcknowledgerFunc) Acknowledge(r Review) { f(r) }

type logAcknowledger struct {
	logger *slog.Logger
}

func (a logAcknowledger) Acknowledge(r Review) {
	a.logger.LogAttrs(context.Background(), slog.LevelInfo, "review acknowledged",
		slog.Int("rating", r.Rating),
		slog.Int("feedback_len", len(r.Feedback)),
	)
}
