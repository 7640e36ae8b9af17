package cart_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lumieats/table-ordering-platform/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Now()
	state := cart.State{}.SetContext("resto-1", "table-7")
	state, err := state.AddItem(burger(), 2, []cart.Option{{Name: "sauce", Value: "bbq", PriceModifier: 100}}, limits)
	require.NoError(t, err)
	state = state.ApplyCoupon(cart.AppliedCoupon{ID: "c1", Code: "LUMI-ABC12", DiscountType: cart.DiscountPercentage, DiscountValue: 10})

	data, err := cart.EncodeSnapshot(state, now)
	require.NoError(t, err)

	loaded, ok := cart.DecodeSnapshot(data, now.Add(time.Hour), cart.DefaultSnapshotMaxAge)

	require.True(t, ok)
	assert.Equal(t, state.Items, loaded.Items)
	assert.Equal(t, "resto-1", loaded.RestaurantID)
	assert.Equal(t, "table-7", loaded.TableID)
	require.NotNil(t, loaded.AppliedCoupon)
	assert.Equal(t, "LUMI-ABC12", loaded.AppliedCoupon.Code)
	assert.Equal(t, state.TotalAmount(), loaded.TotalAmount())
}

func TestSnapshotExpiryResets(t *testing.T) {
	now := time.Now()
	state := cart.State{}.SetContext("resto-1", "table-7")
	state, _ = state.AddItem(burger(), 1, nil, limits)

	data, err := cart.EncodeSnapshot(state, now)
	require.NoError(t, err)

	loaded, ok := cart.DecodeSnapshot(data, now.Add(4*time.Hour+time.Minute), cart.DefaultSnapshotMaxAge)

	assert.False(t, ok)
	assert.Empty(t, loaded.Items)
	assert.Empty(t, loaded.RestaurantID)
	assert.Empty(t, loaded.TableID)
	assert.Nil(t, loaded.AppliedCoupon)
}

func TestSnapshotJustUnderMaxAgeLoads(t *testing.T) {
	now := time.Now()
	state := cart.State{}.SetContext("resto-1", "table-7")

	data, err := cart.EncodeSnapshot(state, now)
	require.NoError(t, err)

	_, ok := cart.DecodeSnapshot(data, now.Add(4*time.Hour-time.Minute), cart.DefaultSnapshotMaxAge)

	assert.True(t, ok)
}

func TestSnapshotCorruptionResets(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"Unparseable", []byte(`{"items": [`)},
		{"Not JSON At All", []byte("garbage")},
		{"Wrong Items Shape", []byte(`{"version": 3, "items": "nope", "timestamp": "2026-01-01T00:00:00Z"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loaded, ok := cart.DecodeSnapshot(tc.data, time.Now(), cart.DefaultSnapshotMaxAge)

			assert.False(t, ok)
			assert.Empty(t, loaded.Items)
		})
	}
}

func TestSnapshotVersionMismatchResets(t *testing.T) {
	now := time.Now()
	legacy := cart.Snapshot{
		Version:      cart.SnapshotVersion - 1,
		RestaurantID: "resto-1",
		TableID:      "table-7",
		Timestamp:    now,
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)

	loaded, ok := cart.DecodeSnapshot(data, now, cart.DefaultSnapshotMaxAge)

	assert.False(t, ok)
	assert.Empty(t, loaded.RestaurantID)
}

func TestSnapshotMissingTimestampResets(t *testing.T) {
	data := []byte(`{"version": 3, "items": []}`)

	_, ok := cart.DecodeSnapshot(data, time.Now(), cart.DefaultSnapshotMaxAge)

	assert.False(t, ok)
}
