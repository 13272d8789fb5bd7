package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type ShopHandler struct {
	Store *store.Store
}

// List is open to every signed-in role; parents browse the shop too.
func (h ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, h.Store.ShopItems())
}

type saveShopItemRequest struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Price    float64             `json:"price"`
	ImageURL string              `json:"image_url"`
	Category models.ShopCategory `json:"category"`
	Stock    int                 `json:"stock"`
}

func (h ShopHandler) Save(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageShop); user == nil {
		return
	}
	var req saveShopItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	itemID, err := h.Store.SaveShopItem(r.Context(), store.ShopItemInput{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Stock:    req.Stock,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to save item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": itemID})
}

func (h ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageShop); user == nil {
		return
	}
	itemID := r.PathValue("id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	if err := h.Store.DeleteShopItem(r.Context(), itemID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
