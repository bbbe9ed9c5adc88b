package stakedomain

import "fmt"

// Status is the closed set of stake lifecycle states.
//
// A stake starts available, moves to pending when a reservant claims it, and
// to confirmed when an administrator records the payment. Administrators can
// cancel a pending or confirmed stake back to available; no other transitions
// exist.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Statuses lists every valid status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusPending, StatusConfirmed}
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusPending, StatusConfirmed:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid stake status: %q", s)
}

// IsValid reports whether the status is one of the three known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusConfirmed:
		return true
	}
	return false
}

// CanReserve reports whether a reservant may claim the stake.
func (s Status) CanReserve() bool {
	return s == StatusAvailable
}

// CanConfirmPayment reports whether an administrator may mark the stake paid.
func (s Status) CanConfirmPayment() bool {
	return s == StatusPending
}

// CanCancel reports whether an administrator may return the stake to the pool.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) String() string {
	return string(s)
}
