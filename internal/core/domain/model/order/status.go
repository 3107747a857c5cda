package order

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> picked_up ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
//
// Delivered and cancelled are terminal: no transition leaves them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly placed order,
	// awaiting confirmation by the restaurant.
	StatusPending

	// StatusConfirmed indicates the restaurant accepted the order.
	StatusConfirmed

	// StatusPreparing indicates the kitchen started working on the order.
	StatusPreparing

	// StatusReady indicates the order is packed and waiting for pickup.
	StatusReady

	// StatusPickedUp indicates the assigned driver collected the order.
	StatusPickedUp

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before preparation
	// started. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusConfirmed: "confirmed",
		StatusPreparing: "preparing",
		StatusReady:     "ready",
		StatusPickedUp:  "picked_up",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusConfirmed: "confirmed",
		StatusPreparing: "preparing",
		StatusReady:     "ready",
		StatusPickedUp:  "picked_up",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// StatusFromString parses a persisted or user-supplied status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("order status")
}

// Validate checks if the Status value is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("order status")
	}
	return nil
}

// String returns the lowercase name of the status, e.g. "picked_up".
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition can leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Confirm transitions pending -> confirmed.
func (s Status) Confirm() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), StatusConfirmed.String())
	}
	return StatusConfirmed, nil
}

// StartPreparing transitions confirmed -> preparing.
func (s Status) StartPreparing() (Status, error) {
	if s != StatusConfirmed {
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), StatusPreparing.String())
	}
	return StatusPreparing, nil
}

// MarkReady transitions preparing -> ready.
func (s Status) MarkReady() (Status, error) {
	if s != StatusPreparing {
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), StatusReady.String())
	}
	return StatusReady, nil
}

// PickUp transitions ready -> picked_up.
func (s Status) PickUp() (Status, error) {
	if s != StatusReady {
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), StatusPickedUp.String())
	}
	return StatusPickedUp, nil
}

// Deliver transitions picked_up -> delivered.
func (s Status) Deliver() (Status, error) {
	if s != StatusPickedUp {
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), StatusDelivered.String())
	}
	return StatusDelivered, nil
}

// Cancel transitions pending or confirmed -> cancelled. Once preparation
// started the order can no longer be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != StatusPending && s != StatusConfirmed {
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), StatusCancelled.String())
	}
	return StatusCancelled, nil
}

// Next returns the transition that advances the status one step along the
// happy path. Cancellation is a separate path and never returned here.
func (s Status) Next() (Status, error) {
	switch s {
	case StatusPending:
		return s.Confirm()
	case StatusConfirmed:
		return s.StartPreparing()
	case StatusPreparing:
		return s.MarkReady()
	case StatusReady:
		return s.PickUp()
	case StatusPickedUp:
		return s.Deliver()
	default:
		return 0, errs.NewInvalidStateTransitionError("order", s.String(), "next")
	}
}
