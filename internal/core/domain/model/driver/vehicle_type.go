package driver

import "marketplace/internal/pkg/errs"

// VehicleType identifies what a driver delivers with. It affects nothing in
// the assignment algorithm today but is surfaced to customers and kept for
// parity with driver onboarding.
type VehicleType string

const (
	VehicleBike    VehicleType = "bike"
	VehicleScooter VehicleType = "scooter"
	VehicleCar     VehicleType = "car"
)

// Validate checks if the VehicleType is one of the supported kinds.
func (v VehicleType) Validate() error {
	switch v {
	case VehicleBike, VehicleScooter, VehicleCar:
		return nil
	default:
		return errs.NewValueIsInvalidError("vehicle type")
	}
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}
