package driver

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a driver's registration.
// It implements a state machine with defined transitions:
//
//	pending ──┬──> approved ──> suspended
//	          └──> rejected
//
// Rejected and suspended are terminal within this core; re-approval is a
// manual back-office process and never happens through the API.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly registered driver,
	// awaiting review by an admin or the managing restaurant.
	StatusPending

	// StatusApproved indicates the driver passed review and may go available
	// and receive assignments.
	StatusApproved

	// StatusRejected indicates the driver failed review. Terminal.
	StatusRejected

	// StatusSuspended indicates an approved driver was taken off the
	// platform. Terminal; suspension also forces unavailability.
	StatusSuspended
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusApproved:  "approved",
		StatusRejected:  "rejected",
		StatusSuspended: "suspended",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusApproved:  "approved",
		StatusRejected:  "rejected",
		StatusSuspended: "suspended",
	}
}

// StatusFromString parses a persisted or user-supplied status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("driver status")
}

// Validate checks if the Status value is one of the defined driver statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("driver status")
	}
	return nil
}

// String returns the lowercase name of the status, e.g. "approved".
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Approve transitions pending -> approved.
func (s Status) Approve() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidStateTransitionError("driver", s.String(), StatusApproved.String())
	}
	return StatusApproved, nil
}

// Reject transitions pending -> rejected.
func (s Status) Reject() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidStateTransitionError("driver", s.String(), StatusRejected.String())
	}
	return StatusRejected, nil
}

// Suspend transitions approved -> suspended.
func (s Status) Suspend() (Status, error) {
	if s != StatusApproved {
		return 0, errs.NewInvalidStateTransitionError("driver", s.String(), StatusSuspended.String())
	}
	return StatusSuspended, nil
}
