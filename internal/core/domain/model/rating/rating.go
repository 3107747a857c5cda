package rating

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Rating score bounds, inclusive.
const (
	ScoreMin = 1
	ScoreMax = 5
)

// ErrRatingIsNotConstructed is returned when using an improperly initialized DriverRating.
var ErrRatingIsNotConstructed = errors.New("DriverRating must be created via NewDriverRating constructor")

// DriverRating is a customer's one-time review of a delivered order. Its
// identity is the order id: storage enforces at most one rating per order.
//
// The overall score is mandatory and feeds the driver's cached average; the
// sub-scores, comment, and tip are optional color.
type DriverRating struct {
	orderID         kernel.UUID
	driverID        kernel.UUID
	customerID      kernel.UUID
	overall         int
	punctuality     *int
	professionalism *int
	foodCondition   *int
	comment         string
	tip             kernel.Money
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewDriverRating creates a rating for a delivered order. Overall and any
// provided sub-scores must be between 1 and 5; the tip may be zero.
func NewDriverRating(
	orderID, driverID, customerID kernel.UUID,
	overall int,
	punctuality, professionalism, foodCondition *int,
	comment string,
	tip kernel.Money,
	createdAt time.Time,
) (*DriverRating, error) {
	r := &DriverRating{
		comment:   comment,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setOrderID(orderID),
		r.setDriverID(driverID),
		r.setCustomerID(customerID),
		r.setOverall(overall),
		r.setSubScore("punctuality", punctuality, &r.punctuality),
		r.setSubScore("professionalism", professionalism, &r.professionalism),
		r.setSubScore("food condition", foodCondition, &r.foodCondition),
		r.setTip(tip),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreDriverRating reconstructs a DriverRating from persistent storage.
func RestoreDriverRating(
	orderID, driverID, customerID kernel.UUID,
	overall int,
	punctuality, professionalism, foodCondition *int,
	comment string,
	tip kernel.Money,
	createdAt time.Time,
) (*DriverRating, error) {
	return NewDriverRating(orderID, driverID, customerID,
		overall, punctuality, professionalism, foodCondition, comment, tip, createdAt)
}

// Validate ensures the DriverRating was created through a constructor.
func (r *DriverRating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// OrderID returns the rated order's id, which is the rating's identity.
func (r *DriverRating) OrderID() kernel.UUID {
	return r.orderID
}

// DriverID returns the rated driver's id.
func (r *DriverRating) DriverID() kernel.UUID {
	return r.driverID
}

// CustomerID returns the reviewing customer's id.
func (r *DriverRating) CustomerID() kernel.UUID {
	return r.customerID
}

// Overall returns the mandatory overall score.
func (r *DriverRating) Overall() int {
	return r.overall
}

// Punctuality returns the optional punctuality sub-score.
func (r *DriverRating) Punctuality() *int {
	return r.punctuality
}

// Professionalism returns the optional professionalism sub-score.
func (r *DriverRating) Professionalism() *int {
	return r.professionalism
}

// FoodCondition returns the optional food-condition sub-score.
func (r *DriverRating) FoodCondition() *int {
	return r.foodCondition
}

// Comment returns the optional free-form comment.
func (r *DriverRating) Comment() string {
	return r.comment
}

// Tip returns the tip amount, possibly zero.
func (r *DriverRating) Tip() kernel.Money {
	return r.tip
}

// CreatedAt returns when the rating was submitted.
func (r *DriverRating) CreatedAt() time.Time {
	return r.createdAt
}

func (r *DriverRating) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderID = id
	return nil
}

func (r *DriverRating) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.driverID = id
	return nil
}

func (r *DriverRating) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.customerID = id
	return nil
}

func (r *DriverRating) setOverall(overall int) error {
	if overall < ScoreMin || overall > ScoreMax {
		return errs.NewValueIsOutOfRangeError("overall rating", overall, ScoreMin, ScoreMax)
	}
	r.overall = overall
	return nil
}

func (r *DriverRating) setSubScore(name string, score *int, field **int) error {
	if score == nil {
		return nil
	}
	if *score < ScoreMin || *score > ScoreMax {
		return errs.NewValueIsOutOfRangeError(name, *score, ScoreMin, ScoreMax)
	}
	*field = score
	return nil
}

func (r *DriverRating) setTip(tip kernel.Money) error {
	if err := tip.Validate(); err != nil {
		return err
	}
	r.tip = tip
	return nil
}
