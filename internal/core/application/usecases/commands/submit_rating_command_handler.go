package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ErrOrderAlreadyRated is returned when submitting a second rating for the
// same order.
var ErrOrderAlreadyRated = errors.New("order already rated")

// SubmitRatingCommandHandler handles rating submission. Only the ordering
// customer may rate, only delivered orders qualify, and each order accepts
// exactly one rating. The driver's cached aggregates are updated through the
// repository's atomic fold, so concurrent submissions for different orders
// of the same driver never lose updates.
type SubmitRatingCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

// NewSubmitRatingCommandHandler creates a handler for rating submission.
func NewSubmitRatingCommandHandler(uowFactory UoWFactory) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the rating submission.
func (h *SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ratedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.CanSubmitRating(cmd.Actor(), ratedOrder); err != nil {
		return err
	}

	if ratedOrder.Status() != order.StatusDelivered {
		return errs.NewInvalidStateTransitionError("order", ratedOrder.Status().String(), "rated")
	}

	ratingRepo := uow.RatingRepository()
	exists, err := ratingRepo.ExistsForOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return ErrOrderAlreadyRated
	}

	review, err := rating.NewDriverRating(
		ratedOrder.ID(),
		*ratedOrder.DriverID(),
		ratedOrder.CustomerID(),
		cmd.Overall(),
		cmd.Punctuality(),
		cmd.Professionalism(),
		cmd.FoodCondition(),
		cmd.Comment(),
		cmd.Tip(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = ratingRepo.Add(ctx, review); err != nil {
		return err
	}

	if err = uow.DriverRepository().ApplyRating(ctx, review.DriverID(), review.Overall(), review.Tip()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
