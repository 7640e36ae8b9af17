// Package cart implements the table-ordering cart aggregate: line
// deduplication, quantity limits, coupon math and the persisted
// snapshot lifecycle.
//
// State is a value. Mutating operations return a new State and never
// touch the receiver, so a failed operation leaves the caller's state
// unchanged. Persistence is a boundary concern (see Store).
package cart

import "sort"

// DiscountType mirrors the coupon discount kinds understood by the
// pricing math.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed_amount"
	DiscountFreeItem   DiscountType = "free_item"
)

// Product is the catalog projection AddItem snapshots from. Price is
// in the smallest currency unit.
type Product struct {
	ID           string
	RestaurantID string
	Name         string
	Price        int64
}

// Limits are the configured cart bounds. Zero fields fall back to the
// defaults below.
type Limits struct {
	MaxItems        int
	MaxLineQuantity int
}

const (
	DefaultMaxItems        = 50
	DefaultMaxLineQuantity = 99
)

func (l Limits) maxItems() int {
	if l.MaxItems > 0 {
		return l.MaxItems
	}

	return DefaultMaxItems
}

func (l Limits) maxLineQuantity() int {
	if l.MaxLineQuantity > 0 {
		return l.MaxLineQuantity
	}

	return DefaultMaxLineQuantity
}

// Option is a single product configuration choice. PriceModifier is in
// the smallest currency unit and may be negative.
type Option struct {
	Name          string `json:"name"`
	Value         string `json:"value"`
	PriceModifier int64  `json:"price_modifier"`
}

// Line is one cart entry, identified by (ProductID, normalized
// Options). ProductName and UnitPrice are snapshots taken at add time
// so later catalog edits do not reprice a cart.
type Line struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
	Options     []Option `json:"options,omitempty"`
}

// LineTotal is (unit price + option modifiers) × quantity.
func (l Line) LineTotal() int64 {
	unit := l.UnitPrice
	for _, opt := range l.Options {
		unit += opt.PriceModifier
	}

	return unit * int64(l.Quantity)
}

// AppliedCoupon is the client-side projection of a verified coupon. At
// most one per cart; verification happens before ApplyCoupon is called.
type AppliedCoupon struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	Description   string       `json:"description"`
}

// State is the cart aggregate.
type State struct {
	Items         []Line         `json:"items"`
	RestaurantID  string         `json:"restaurant_id,omitempty"`
	TableID       string         `json:"table_id,omitempty"`
	AppliedCoupon *AppliedCoupon `json:"applied_coupon,omitempty"`
}

func (s State) HasContext() bool {
	return s.RestaurantID != "" && s.TableID != ""
}

// normalizeOptions returns a copy sorted by (name, value, modifier) so
// option sets compare independently of insertion order.
func normalizeOptions(opts []Option) []Option {
	if len(opts) == 0 {
		return nil
	}

	sorted := make([]Option, len(opts))
	copy(sorted, opts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value < sorted[j].Value
		}
		return sorted[i].PriceModifier < sorted[j].PriceModifier
	})

	return sorted
}

// OptionsEqual reports whether two option sets are the same line key:
// equal length and pairwise-equal (name, value, modifier) after
// normalization.
func OptionsEqual(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}

	na, nb := normalizeOptions(a), normalizeOptions(b)
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}

	return true
}

// cloneItems gives mutating operations their own backing array.
func (s State) cloneItems() []Line {
	items := make([]Line, len(s.Items))
	copy(items, s.Items)

	return items
}
