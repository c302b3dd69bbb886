//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/service"
)

func TestOrderRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewOrderRepository(db)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	userID := "user-1"
	payload := model.OrderPayload{
		UserID:  &userID,
		Phone:   "+7 999 000",
		Address: model.Address{Street: "Lenina", Building: "12", Flat: "4"},
		Pizzas: []model.PizzaSelection{{
			Name: "Margherita", DoughID: 1, SizeID: 2, SauceID: 1, Quantity: 2,
			Ingredients: []model.IngredientSelection{{IngredientID: 13, Quantity: 1}},
		}},
		Misc: []model.MiscSelection{{MiscID: 1, Quantity: 3}},
	}

	var firstID string

	t.Run("create order", func(t *testing.T) {
		result, err := repo.CreateOrder(ctx, payload)
		require.NoError(t, err)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, &userID, result.UserID)
		assert.Equal(t, payload.Pizzas, result.Pizzas)
		assert.Equal(t, base.Add(time.Minute), result.CreatedAt)
		firstID = result.ID
	})

	t.Run("get order round-trips to the load representation", func(t *testing.T) {
		order, err := repo.GetOrder(ctx, firstID)
		require.NoError(t, err)
		assert.Equal(t, firstID, order.ID)
		assert.Equal(t, "+7 999 000", order.Phone)
		require.NotNil(t, order.Address)
		assert.Equal(t, "Lenina", order.Address.Street)
		assert.Equal(t, payload.Pizzas, order.PizzaSelections())
		assert.Equal(t, payload.Misc, order.MiscSelections())
	})

	t.Run("anonymous order without lines", func(t *testing.T) {
		result, err := repo.CreateOrder(ctx, model.OrderPayload{Phone: "1"})
		require.NoError(t, err)
		assert.Nil(t, result.UserID)

		order, err := repo.GetOrder(ctx, result.ID)
		require.NoError(t, err)
		assert.Nil(t, order.UserID)
		assert.Empty(t, order.SessionID)
		assert.Empty(t, order.PizzaSelections())
	})

	t.Run("order records the placing cart session", func(t *testing.T) {
		result, err := repo.CreateOrder(service.WithSessionID(ctx, "session-9"), model.OrderPayload{Phone: "2"})
		require.NoError(t, err)

		order, err := repo.GetOrder(ctx, result.ID)
		require.NoError(t, err)
		assert.Equal(t, "session-9", order.SessionID)
	})

	t.Run("list orders newest first", func(t *testing.T) {
		second := payload
		second.Phone = "second"
		_, err := repo.CreateOrder(ctx, second)
		require.NoError(t, err)

		orders, err := repo.ListOrders(ctx, userID, 0)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "second", orders[0].Phone)
		assert.Equal(t, firstID, orders[1].ID)

		limited, err := repo.ListOrders(ctx, userID, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("list for unknown user is empty", func(t *testing.T) {
		orders, err := repo.ListOrders(ctx, "nobody", 10)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		_, err := repo.GetOrder(ctx, "65b7c0f2a1d3e4f5a6b7c8d9")
		assert.ErrorIs(t, err, model.ErrOrderNotFound)

		_, err = repo.GetOrder(ctx, "not-an-object-id")
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}
