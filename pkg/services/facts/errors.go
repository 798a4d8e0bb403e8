package facts

import (
	"errors"
	"fmt"
)

// ErrUnavailable is matched by every error a provider returns when the category
// could not be read (access denied, throttled, API unreachable).
var ErrUnavailable = errors.New("resource facts unavailable")

type Reason string

const (
	ReasonDenied      Reason = "denied"
	ReasonThrottled   Reason = "throttled"
	ReasonUnavailable Reason = "unavailable"
)

type ProviderError struct {
	Op     string
	Code   string
	Reason Reason
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s failed (%s, %s): %v", e.Op, e.Reason, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Reason, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrUnavailable
}

// IsDenied reports whether err was caused by missing permissions.
func IsDenied(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Reason == ReasonDenied
}
