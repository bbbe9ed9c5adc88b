package stakedb

import "errors"

var (
	// ErrStakeNotFound means no stake exists with the given ID.
	ErrStakeNotFound = errors.New("stake not found")

	// ErrStakeNotAvailable means the stake moved out of the available state
	// before this reservation attempt landed; the caller lost the race.
	ErrStakeNotAvailable = errors.New("stake is no longer available")

	// ErrInvalidTransition means the stake's current status does not permit
	// the requested administrative transition.
	ErrInvalidTransition = errors.New("stake status does not permit this transition")
)
