package tracker

import "github.com/pkg/errors"

// ErrPreconditionViolation is returned when an action is invoked outside its guard
// range. The tracker state is left unchanged. The UI disables the matching control,
// so this path only fires for programmatic callers.
var ErrPreconditionViolation = errors.New("precondition violation")

func violation(format string, args ...any) error {
	return errors.Wrapf(ErrPreconditionViolation, format, args...)
}
