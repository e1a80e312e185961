package order

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusUnlocking      Status = "unlocking"
	StatusInUse          Status = "in_use"
	StatusReturned       Status = "returned"
	StatusUnlockFailed   Status = "unlock_failed"
	StatusOverdue        Status = "overdue"
	StatusCanceled       Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusUnlocking, StatusInUse, StatusReturned,
		StatusUnlockFailed, StatusOverdue, StatusCanceled:
		return true
	default:
		return false
	}
}

// Terminal states never transition again without an explicit external
// action. unlock_failed is terminal for the UI but may be retried through
// the confirm-and-unlock endpoint, which is the retry path below.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusReturned, StatusCanceled:
		return true
	default:
		return false
	}
}

var allowedTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusUnlocking, StatusCanceled},
	StatusUnlocking:      {StatusInUse, StatusUnlockFailed},
	StatusUnlockFailed:   {StatusUnlocking}, // explicit retry only
	StatusInUse:          {StatusReturned, StatusOverdue},
	StatusOverdue:        {StatusReturned},
	StatusReturned:       {},
	StatusCanceled:       {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
