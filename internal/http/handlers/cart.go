package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type CartHandler struct {
	Store *store.Store
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (h CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: h.Store.Cart(), Total: h.Store.CartTotal()})
}

type addCartItemRequest struct {
	ItemID string `json:"item_id"`
}

func (h CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	for _, item := range h.Store.ShopItems() {
		if item.ID == req.ItemID {
			h.Store.AddToCart(item)
			writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "item not found")
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	cartID := r.PathValue("cartId")
	if cartID == "" {
		writeError(w, http.StatusBadRequest, "missing cart id")
		return
	}
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	h.Store.UpdateCartQuantity(cartID, req.Delta)
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	cartID := r.PathValue("cartId")
	if cartID == "" {
		writeError(w, http.StatusBadRequest, "missing cart id")
		return
	}
	h.Store.RemoveFromCart(cartID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
