package handlers

import (
	"errors"
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type OrdersHandler struct {
	Store *store.Store
}

func (h OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	user := requireCapability(w, r, models.CapPlaceOrders)
	if user == nil {
		return
	}
	orders := h.Store.Orders()
	// Non-managing roles only see their own orders.
	if !models.RoleCan(user.Role, models.CapManageOrders) {
		own := []models.Order{}
		for _, order := range orders {
			if order.UserID == user.ID {
				own = append(own, order)
			}
		}
		orders = own
	}
	writeJSON(w, http.StatusOK, orders)
}

type placeOrderRequest struct {
	StudentID     string `json:"student_id"`
	PaymentMethod string `json:"payment_method"`
}

func (h OrdersHandler) Place(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapPlaceOrders); user == nil {
		return
	}
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	orderID, err := h.Store.PlaceOrder(r.Context(), req.StudentID, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": orderID})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageOrders); user == nil {
		return
	}
	orderID := r.PathValue("id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.UpdateOrderStatus(r.Context(), orderID, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
