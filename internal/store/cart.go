package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

// AddToCart merges on shop-item id: adding an item already in the cart
// bumps that line's quantity instead of creating a duplicate line.
func (s *Store) AddToCart(item models.ShopItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ShopItem.ID == item.ID {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, models.CartItem{
		ShopItem: item,
		CartID:   uuid.NewString(),
		Quantity: 1,
	})
}

// UpdateCartQuantity applies a delta to a cart line, clamping at 1.
func (s *Store) UpdateCartQuantity(cartID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].CartID == cartID {
			quantity := s.cart[i].Quantity + delta
			if quantity < 1 {
				quantity = 1
			}
			s.cart[i].Quantity = quantity
			return
		}
	}
}

// RemoveFromCart removes a line by its ephemeral cart id, not the item id.
func (s *Store) RemoveFromCart(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].CartID == cartID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem(nil), s.cart...)
}

func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, line := range s.cart {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// PlaceOrder snapshots the cart into an Order with the initial
// "Uncollected" status. The cart is cleared only after the write
// succeeds; an empty cart is rejected outright.
func (s *Store) PlaceOrder(ctx context.Context, studentID, paymentMethod string) (string, error) {
	user := s.CurrentUser()
	if user == nil {
		return "", ErrNotSignedIn
	}

	s.mu.RLock()
	items := append([]models.CartItem(nil), s.cart...)
	s.mu.RUnlock()
	if len(items) == 0 {
		return "", s.fail("order", "Your cart is empty.", ErrEmptyCart)
	}

	var total float64
	for _, line := range items {
		total += line.Price * float64(line.Quantity)
	}

	order := models.Order{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		StudentID:     studentID,
		Items:         items,
		Total:         total,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusUncollected,
		CreatedAt:     time.Now(),
	}
	if err := s.backend.Set(ctx, ColOrders, order.ID, order); err != nil {
		return "", s.fail("order", "Could not place the order.", err)
	}

	s.ClearCart()
	s.Notify(NotifySuccess, "Order placed.")
	return order.ID, nil
}

// UpdateOrderStatus is an admin action for marking orders collected.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if err := s.backend.Merge(ctx, ColOrders, orderID, map[string]any{"status": status}); err != nil {
		return s.fail("order", "Could not update the order.", err)
	}
	s.logAction(ctx, "order.status", map[string]string{"orderId": orderID, "status": status})
	return nil
}
