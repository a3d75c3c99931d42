package domain

import "errors"

// Sentinel errors surfaced to the command line.
var (
	ErrInputNotFound     = errors.New("input not found")
	ErrMissingCapability = errors.New("missing capability")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrRunNotFound       = errors.New("run not found")
)

// HintError attaches a remediation hint to an error.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }

func (e *HintError) Unwrap() error { return e.Err }

// Hint returns the first remediation hint in err's chain, if any.
func Hint(err error) string {
	var h *HintError
	if errors.As(err, &h) {
		return h.Hint
	}
	return ""
}
