package cart_test

import (
	"testing"

	"github.com/lumieats/table-ordering-platform/internal/cart"
	appErrors "github.com/lumieats/table-ordering-platform/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var limits = cart.Limits{MaxItems: 50, MaxLineQuantity: 99}

func newContextState() cart.State {
	return cart.State{}.SetContext("resto-1", "table-7")
}

func burger() cart.Product {
	return cart.Product{ID: "prod-burger", RestaurantID: "resto-1", Name: "Burger Maison", Price: 1250}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, code, appErr.Code)
}

func TestAddItem(t *testing.T) {
	t.Run("Merge - Equal Option Sets In Different Order", func(t *testing.T) {
		// Arrange
		state := newContextState()
		optsA := []cart.Option{
			{Name: "sauce", Value: "bbq", PriceModifier: 100},
			{Name: "taille", Value: "XL", PriceModifier: 200},
		}
		optsB := []cart.Option{
			{Name: "taille", Value: "XL", PriceModifier: 200},
			{Name: "sauce", Value: "bbq", PriceModifier: 100},
		}

		// Act
		state, err := state.AddItem(burger(), 2, optsA, limits)
		require.NoError(t, err)
		state, err = state.AddItem(burger(), 3, optsB, limits)

		// Assert
		assert.NoError(t, err)
		require.Len(t, state.Items, 1)
		assert.Equal(t, 5, state.Items[0].Quantity)
	})

	t.Run("No Merge - Option Sets Differ", func(t *testing.T) {
		state := newContextState()
		optsA := []cart.Option{{Name: "sauce", Value: "bbq", PriceModifier: 100}}
		optsB := []cart.Option{{Name: "sauce", Value: "mayo", PriceModifier: 100}}

		state, err := state.AddItem(burger(), 1, optsA, limits)
		require.NoError(t, err)
		state, err = state.AddItem(burger(), 1, optsB, limits)

		assert.NoError(t, err)
		assert.Len(t, state.Items, 2)
	})

	t.Run("No Merge - Modifier Differs", func(t *testing.T) {
		state := newContextState()
		optsA := []cart.Option{{Name: "sauce", Value: "bbq", PriceModifier: 100}}
		optsB := []cart.Option{{Name: "sauce", Value: "bbq", PriceModifier: 150}}

		state, err := state.AddItem(burger(), 1, optsA, limits)
		require.NoError(t, err)
		state, err = state.AddItem(burger(), 1, optsB, limits)

		assert.NoError(t, err)
		assert.Len(t, state.Items, 2)
	})

	t.Run("Merge - No Options On Either Line", func(t *testing.T) {
		state := newContextState()

		state, err := state.AddItem(burger(), 1, nil, limits)
		require.NoError(t, err)
		state, err = state.AddItem(burger(), 4, []cart.Option{}, limits)

		assert.NoError(t, err)
		require.Len(t, state.Items, 1)
		assert.Equal(t, 5, state.Items[0].Quantity)
	})

	t.Run("Failure - No Context", func(t *testing.T) {
		state := cart.State{}

		next, err := state.AddItem(burger(), 1, nil, limits)

		assertCode(t, err, appErrors.ErrCodeCartNoContext)
		assert.Empty(t, next.Items)
	})

	t.Run("Failure - Cross Restaurant", func(t *testing.T) {
		state := newContextState()
		state, err := state.AddItem(burger(), 1, nil, limits)
		require.NoError(t, err)

		foreign := cart.Product{ID: "prod-pizza", RestaurantID: "resto-2", Name: "Pizza", Price: 900}
		next, err := state.AddItem(foreign, 1, nil, limits)

		assertCode(t, err, appErrors.ErrCodeCartCrossRestaurant)
		// failed add is a no-op on the aggregate
		assert.Equal(t, state.Items, next.Items)
	})

	t.Run("Failure - Non Positive Quantity", func(t *testing.T) {
		state := newContextState()

		_, err := state.AddItem(burger(), 0, nil, limits)
		assertCode(t, err, appErrors.ErrCodeCartInvalidQuantity)

		_, err = state.AddItem(burger(), -2, nil, limits)
		assertCode(t, err, appErrors.ErrCodeCartInvalidQuantity)
	})

	t.Run("Failure - Cart Full", func(t *testing.T) {
		state := newContextState()
		state, err := state.AddItem(burger(), 49, nil, limits)
		require.NoError(t, err)

		other := cart.Product{ID: "prod-frites", RestaurantID: "resto-1", Name: "Frites", Price: 400}
		next, err := state.AddItem(other, 2, nil, limits)

		assertCode(t, err, appErrors.ErrCodeCartFull)
		assert.Equal(t, 49, next.TotalItems())
	})

	t.Run("Failure - Line Quantity Cap On Merge", func(t *testing.T) {
		// the per-line cap applies before the cart-wide cap is a factor
		wide := cart.Limits{MaxItems: 500, MaxLineQuantity: 99}
		state := newContextState()
		state, err := state.AddItem(burger(), 98, nil, wide)
		require.NoError(t, err)

		next, err := state.AddItem(burger(), 2, nil, wide)

		assertCode(t, err, appErrors.ErrCodeCartMaxQuantity)
		require.Len(t, next.Items, 1)
		assert.Equal(t, 98, next.Items[0].Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Removes All Option Variants Of A Product", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 1, []cart.Option{{Name: "sauce", Value: "bbq"}}, limits)
		state, _ = state.AddItem(burger(), 1, []cart.Option{{Name: "sauce", Value: "mayo"}}, limits)
		other := cart.Product{ID: "prod-frites", RestaurantID: "resto-1", Name: "Frites", Price: 400}
		state, _ = state.AddItem(other, 1, nil, limits)

		state = state.RemoveItem("prod-burger")

		require.Len(t, state.Items, 1)
		assert.Equal(t, "prod-frites", state.Items[0].ProductID)
	})

	t.Run("Unknown Product Is A No-Op", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)

		state = state.RemoveItem("prod-unknown")

		assert.Len(t, state.Items, 1)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Sets Quantity", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)

		state, err := state.UpdateQuantity("prod-burger", 7, limits)

		assert.NoError(t, err)
		assert.Equal(t, 7, state.Items[0].Quantity)
	})

	t.Run("Zero Quantity Removes", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)

		state, err := state.UpdateQuantity("prod-burger", 0, limits)

		assert.NoError(t, err)
		assert.Empty(t, state.Items)
	})

	t.Run("Failure - Above Line Cap", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)

		next, err := state.UpdateQuantity("prod-burger", 100, limits)

		assertCode(t, err, appErrors.ErrCodeCartMaxQuantity)
		assert.Equal(t, 2, next.Items[0].Quantity)
	})
}

func TestSetContext(t *testing.T) {
	t.Run("Different Restaurant Discards Items And Coupon", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)
		state = state.ApplyCoupon(cart.AppliedCoupon{Code: "LUMI-ABC12", DiscountType: cart.DiscountFixed, DiscountValue: 500})

		state = state.SetContext("resto-2", "table-1")

		assert.Empty(t, state.Items)
		assert.Nil(t, state.AppliedCoupon)
		assert.Equal(t, "resto-2", state.RestaurantID)
		assert.Equal(t, "table-1", state.TableID)
	})

	t.Run("Same Restaurant New Table Keeps Items", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)

		state = state.SetContext("resto-1", "table-3")

		assert.Len(t, state.Items, 1)
		assert.Equal(t, "table-3", state.TableID)
	})

	t.Run("Different Restaurant With Empty Cart Just Rebinds", func(t *testing.T) {
		state := newContextState()

		state = state.SetContext("resto-9", "table-1")

		assert.Equal(t, "resto-9", state.RestaurantID)
	})
}

func TestClear(t *testing.T) {
	state := newContextState()
	state, _ = state.AddItem(burger(), 2, nil, limits)
	state = state.ApplyCoupon(cart.AppliedCoupon{Code: "LUMI-ABC12"})

	state = state.Clear()

	assert.Empty(t, state.Items)
	assert.Nil(t, state.AppliedCoupon)
	assert.Equal(t, "resto-1", state.RestaurantID)
	assert.Equal(t, "table-7", state.TableID)
}

func TestTotals(t *testing.T) {
	t.Run("Subtotal Includes Option Modifiers", func(t *testing.T) {
		state := newContextState()
		opts := []cart.Option{
			{Name: "taille", Value: "XL", PriceModifier: 200},
			{Name: "sauce", Value: "truffe", PriceModifier: -50},
		}
		state, _ = state.AddItem(burger(), 3, opts, limits)

		// (1250 + 200 - 50) * 3
		assert.Equal(t, int64(4200), state.Subtotal())
		assert.Equal(t, 3, state.TotalItems())
	})

	t.Run("Percentage Coupon", func(t *testing.T) {
		state := newContextState()
		ten := cart.Product{ID: "p", RestaurantID: "resto-1", Name: "Menu", Price: 10000}
		state, _ = state.AddItem(ten, 1, nil, limits)
		state = state.ApplyCoupon(cart.AppliedCoupon{DiscountType: cart.DiscountPercentage, DiscountValue: 15})

		assert.Equal(t, int64(1500), state.DiscountAmount())
		assert.Equal(t, int64(8500), state.TotalAmount())
	})

	t.Run("Percentage Coupon Rounds Half Up", func(t *testing.T) {
		state := newContextState()
		p := cart.Product{ID: "p", RestaurantID: "resto-1", Name: "Café", Price: 333}
		state, _ = state.AddItem(p, 1, nil, limits)
		state = state.ApplyCoupon(cart.AppliedCoupon{DiscountType: cart.DiscountPercentage, DiscountValue: 15})

		// 333 * 15 / 100 = 49.95 -> 50
		assert.Equal(t, int64(50), state.DiscountAmount())
	})

	t.Run("Fixed Amount Capped At Subtotal", func(t *testing.T) {
		state := newContextState()
		p := cart.Product{ID: "p", RestaurantID: "resto-1", Name: "Café", Price: 500}
		state, _ = state.AddItem(p, 1, nil, limits)
		state = state.ApplyCoupon(cart.AppliedCoupon{DiscountType: cart.DiscountFixed, DiscountValue: 2000})

		assert.Equal(t, int64(500), state.DiscountAmount())
		assert.Equal(t, int64(0), state.TotalAmount())
	})

	t.Run("Free Item Yields Zero Discount", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 1, nil, limits)
		state = state.ApplyCoupon(cart.AppliedCoupon{DiscountType: cart.DiscountFreeItem, DiscountValue: 1})

		assert.Equal(t, int64(0), state.DiscountAmount())
		assert.Equal(t, state.Subtotal(), state.TotalAmount())
	})

	t.Run("No Coupon Means No Discount", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, nil, limits)

		assert.Equal(t, int64(0), state.DiscountAmount())
		assert.Equal(t, state.Subtotal(), state.TotalAmount())
	})

	t.Run("Recomputation Is Idempotent", func(t *testing.T) {
		state := newContextState()
		state, _ = state.AddItem(burger(), 2, []cart.Option{{Name: "sauce", Value: "bbq", PriceModifier: 100}}, limits)
		state = state.ApplyCoupon(cart.AppliedCoupon{DiscountType: cart.DiscountPercentage, DiscountValue: 10})

		first := state.TotalAmount()
		for range 5 {
			assert.Equal(t, first, state.TotalAmount())
			assert.Equal(t, state.Subtotal(), state.Subtotal())
		}
	})
}

func TestOptionsEqual(t *testing.T) {
	a := []cart.Option{
		{Name: "b", Value: "2", PriceModifier: 20},
		{Name: "a", Value: "1", PriceModifier: 10},
	}
	b := []cart.Option{
		{Name: "a", Value: "1", PriceModifier: 10},
		{Name: "b", Value: "2", PriceModifier: 20},
	}

	assert.True(t, cart.OptionsEqual(a, b))
	assert.True(t, cart.OptionsEqual(nil, []cart.Option{}))
	assert.False(t, cart.OptionsEqual(a, a[:1]))
	assert.False(t, cart.OptionsEqual(a, []cart.Option{
		{Name: "a", Value: "1", PriceModifier: 10},
		{Name: "b", Value: "2", PriceModifier: 21},
	}))
}
