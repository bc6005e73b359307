package browser

import (
	"context"
	"errors"
	"fmt"
	"net"

	goerrors "github.com/go-errors/errors"
	"github.com/playwright-community/playwright-go"
)

// ErrTimeout is returned by drivers when a bounded wait runs out.
var ErrTimeout = errors.New("browser: timeout")

type Status int

const (
	StatusSuccess Status = iota
	StatusTimeout
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTimeout:
		return "timeout"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of a navigation or wait
type Outcome struct {
	Status Status
	Err    error
}

func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

func Timeout(err error) Outcome {
	if err == nil {
		err = ErrTimeout
	}
	return Outcome{Status: StatusTimeout, Err: err}
}

// Failure records an unexpected error together with the stack it was seen at.
func Failure(err error) Outcome {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Outcome{Status: StatusFailure, Err: goerrors.Wrap(err, 1)}
}

// FromError classifies a driver error.
func FromError(err error) Outcome {
	switch {
	case err == nil:
		return Success()
	case IsTimeout(err):
		return Timeout(err)
	default:
		return Failure(err)
	}
}

func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// Stack returns the captured stack trace of a Failure, or "".
func (o Outcome) Stack() string {
	var stackErr *goerrors.Error
	if errors.As(o.Err, &stackErr) {
		return string(stackErr.Stack())
	}
	return ""
}

// IsTimeout reports whether err came from a bounded wait running out,
// whichever driver produced it.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, playwright.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
