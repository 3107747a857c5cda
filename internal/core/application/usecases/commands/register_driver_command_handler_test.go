package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(
		kernel.NewUUID(), driver.VehicleBike, "TG-1234-AB", &restaurantID)
	require.NoError(t, err)

	repo := new(MockDriverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterDriverCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	persisted := repo.Calls[0].Arguments.Get(1).(*driver.Driver)
	require.Equal(t, driver.StatusPending, persisted.Status())
	require.False(t, persisted.IsAvailable())
	require.False(t, persisted.IsIndependent())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterDriverCommandHandler_Handle_RejectsMissingLicensePlate(t *testing.T) {
	_, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), driver.VehicleCar, "", nil)

	require.Error(t, err)
}

func TestRegisterDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterDriverCommand{} // not constructed properly

	h := commands.NewRegisterDriverCommandHandler(new(MockDriverUoWFactory))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
}
