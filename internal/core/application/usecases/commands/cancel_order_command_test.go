package commands_test

import (
	"testing"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	cmd, err := commands.NewCancelOrderCommand(orderID, buyerID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, buyerID, cmd.BuyerID())
	assert.Equal(t, "changed my mind", cmd.Reason())
}

func TestNewCancelOrderCommand_EmptyReason(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrReasonIsRequired)
}

func TestNewCancelOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCancelOrderCommand(invalidID, kernel.NewUUID(), "changed my mind")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCancelOrderCommand_InvalidBuyerID(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), kernel.UUID{}, "changed my mind")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCancelOrderCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.CancelOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
}
