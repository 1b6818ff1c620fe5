package tracker

// Status is the derived position of a stage relative to the current stage.
type Status int

const (
	StatusPending Status = iota
	StatusCurrent
	StatusCompleted
)

func (s Status) String() string {
	return [...]string{"pending", "current", "completed"}[s]
}

// StatusOf derives the status of stage id when the order is at stage current of n.
// The terminal stage is completed as soon as it is reached; every other stage is
// completed only once the order has moved past it.
func StatusOf(id, current, n int) Status {
	if id == n && current >= n {
		return StatusCompleted
	}
	switch {
	case id < current:
		return StatusCompleted
	case id == current:
		return StatusCurrent
	default:
		return StatusPending
	}
}
