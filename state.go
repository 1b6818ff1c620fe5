package main

import "github.com/katistix/servicetrack/internal/tracker"

// --- STATE MANAGEMENT ---

// focusArea is the review modal control receiving keystrokes.
type focusArea int

const (
	focusStars focusArea = iota
	focusFeedback
)

func (f focusArea) String() string {
	return [...]string{"stars", "feedback"}[f]
}

// statusIcon is the timeline marker for a derived stage status.
func statusIcon(s tracker.Status) string {
	switch s {
	case tracker.StatusCompleted:
		return "✅"
	case tracker.StatusCurrent:
		return "🔵"
	default:
		return "⚪"
	}
}
