package cart

import "github.com/lumieats/table-ordering-platform/internal/errors"

// SetContext scopes the cart to one table's session. A cart holding
// items from a different restaurant is silently emptied (coupon
// included) before the new context takes effect; this is a
// reconciliation policy, not an error.
func (s State) SetContext(restaurantID, tableID string) State {
	if s.RestaurantID != "" && s.RestaurantID != restaurantID && len(s.Items) > 0 {
		s.Items = nil
		s.AppliedCoupon = nil
	}

	s.RestaurantID = restaurantID
	s.TableID = tableID

	return s
}

// AddItem appends a line snapshot of product, or merges into an
// existing line when (productID, options) already match.
func (s State) AddItem(product Product, quantity int, options []Option, limits Limits) (State, error) {
	if !s.HasContext() {
		return s, errors.NoContextError()
	}

	if product.RestaurantID != s.RestaurantID {
		return s, errors.CrossRestaurantError()
	}

	if quantity <= 0 {
		return s, errors.InvalidQuantityError()
	}

	if s.TotalItems()+quantity > limits.maxItems() {
		return s, errors.CartFullError(limits.maxItems())
	}

	items := s.cloneItems()

	for i := range items {
		if items[i].ProductID == product.ID && OptionsEqual(items[i].Options, options) {
			if items[i].Quantity+quantity > limits.maxLineQuantity() {
				return s, errors.MaxQuantityError(limits.maxLineQuantity())
			}

			items[i].Quantity += quantity
			s.Items = items

			return s, nil
		}
	}

	items = append(items, Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
		Options:     normalizeOptions(options),
	})
	s.Items = items

	return s, nil
}

// RemoveItem drops every line carrying productID, option variants
// included.
func (s State) RemoveItem(productID string) State {
	items := make([]Line, 0, len(s.Items))

	for _, line := range s.Items {
		if line.ProductID != productID {
			items = append(items, line)
		}
	}

	s.Items = items

	return s
}

// UpdateQuantity sets the quantity on every line carrying productID.
// Zero or negative quantity removes the line(s).
func (s State) UpdateQuantity(productID string, quantity int, limits Limits) (State, error) {
	if quantity <= 0 {
		return s.RemoveItem(productID), nil
	}

	if quantity > limits.maxLineQuantity() {
		return s, errors.MaxQuantityError(limits.maxLineQuantity())
	}

	items := s.cloneItems()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}

	s.Items = items

	return s, nil
}

// Clear empties items and coupon, preserving the table context.
func (s State) Clear() State {
	s.Items = nil
	s.AppliedCoupon = nil

	return s
}

func (s State) ApplyCoupon(coupon AppliedCoupon) State {
	s.AppliedCoupon = &coupon

	return s
}

func (s State) RemoveCoupon() State {
	s.AppliedCoupon = nil

	return s
}

// TotalItems is the quantity sum across all lines.
func (s State) TotalItems() int {
	total := 0
	for _, line := range s.Items {
		total += line.Quantity
	}

	return total
}

// Subtotal is Σ (unitPrice + Σ option modifiers) × quantity, computed
// fresh on every call.
func (s State) Subtotal() int64 {
	var subtotal int64

	for _, line := range s.Items {
		subtotal += line.LineTotal()
	}

	return subtotal
}

// DiscountAmount derives the coupon discount from the current
// subtotal. free_item always yields zero: which line would become free
// is unspecified upstream, so the type is accepted but inert.
func (s State) DiscountAmount() int64 {
	if s.AppliedCoupon == nil {
		return 0
	}

	subtotal := s.Subtotal()

	switch s.AppliedCoupon.DiscountType {
	case DiscountPercentage:
		// round half up
		return (subtotal*s.AppliedCoupon.DiscountValue + 50) / 100
	case DiscountFixed:
		return min(s.AppliedCoupon.DiscountValue, subtotal)
	case DiscountFreeItem:
		return 0
	default:
		return 0
	}
}

// TotalAmount never goes negative, whatever the coupon says.
func (s State) TotalAmount() int64 {
	return max(0, s.Subtotal()-s.DiscountAmount())
}
