package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand represents a customer's review of a delivered order:
// an overall score, optional sub-scores, a comment, and a tip.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	actor           services.Actor
	overall         int
	punctuality     *int
	professionalism *int
	foodCondition   *int
	comment         string
	tip             kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitRatingCommand creates a command to rate a delivered order.
func NewSubmitRatingCommand(
	orderID kernel.UUID,
	actor services.Actor,
	overall int,
	punctuality, professionalism, foodCondition *int,
	comment string,
	tip kernel.Money,
) (SubmitRatingCommand, error) {
	cmd := SubmitRatingCommand{
		actor:           actor,
		punctuality:     punctuality,
		professionalism: professionalism,
		foodCondition:   foodCondition,
		comment:         comment,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOverall(overall),
		cmd.setTip(tip),
		actor.Role.Validate(),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c SubmitRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the reviewing principal.
func (c SubmitRatingCommand) Actor() services.Actor {
	return c.actor
}

// Overall returns the mandatory overall score.
func (c SubmitRatingCommand) Overall() int {
	return c.overall
}

// Punctuality returns the optional punctuality sub-score.
func (c SubmitRatingCommand) Punctuality() *int {
	return c.punctuality
}

// Professionalism returns the optional professionalism sub-score.
func (c SubmitRatingCommand) Professionalism() *int {
	return c.professionalism
}

// FoodCondition returns the optional food-condition sub-score.
func (c SubmitRatingCommand) FoodCondition() *int {
	return c.foodCondition
}

// Comment returns the optional free-form comment.
func (c SubmitRatingCommand) Comment() string {
	return c.comment
}

// Tip returns the tip amount, possibly zero.
func (c SubmitRatingCommand) Tip() kernel.Money {
	return c.tip
}

func (c *SubmitRatingCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *SubmitRatingCommand) setOverall(overall int) error {
	if overall < rating.ScoreMin || overall > rating.ScoreMax {
		return errs.NewValueIsOutOfRangeError("overall rating", overall, rating.ScoreMin, rating.ScoreMax)
	}
	c.overall = overall
	return nil
}

func (c *SubmitRatingCommand) setTip(tip kernel.Money) error {
	if err := tip.Validate(); err != nil {
		return err
	}
	c.tip = tip
	return nil
}
