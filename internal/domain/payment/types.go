package payment

import "errors"

var ErrInvalidStatus = errors.New("invalid payment status")

// Status mirrors the provider's payment lifecycle. Once terminal it is
// monotonic: a paid/failed/canceled payment never reverts to pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// CanAdvanceTo reports whether a stored status may be replaced by a
// freshly observed provider status without violating monotonicity.
func (s Status) CanAdvanceTo(next Status) bool {
	if s == next {
		return true
	}
	return s == StatusPending
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
