package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

type ShopItemInput struct {
	ID       string
	Name     string              `validate:"required"`
	Price    float64             `validate:"gte=0"`
	ImageURL string              `validate:"omitempty,url"`
	Category models.ShopCategory `validate:"required,oneof=Required Optional"`
	Stock    int                 `validate:"gte=0"`
}

// SaveShopItem creates or updates a uniform-shop item.
func (s *Store) SaveShopItem(ctx context.Context, input ShopItemInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("shop", "Item details are incomplete.", err)
	}
	item := models.ShopItem{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		ImageURL: input.ImageURL,
		Category: input.Category,
		Stock:    input.Stock,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = time.Now()
	} else {
		s.mu.RLock()
		for _, existing := range s.shopItems {
			if existing.ID == item.ID {
				item.CreatedAt = existing.CreatedAt
			}
		}
		s.mu.RUnlock()
	}
	if err := s.backend.Set(ctx, ColShopItems, item.ID, item); err != nil {
		return "", s.fail("shop", "Could not save the item.", err)
	}
	s.logAction(ctx, "shop_item.saved", map[string]string{"itemId": item.ID})
	return item.ID, nil
}

func (s *Store) DeleteShopItem(ctx context.Context, itemID string) error {
	if err := s.backend.Delete(ctx, ColShopItems, itemID); err != nil {
		return s.fail("shop", "Could not delete the item.", err)
	}
	s.logAction(ctx, "shop_item.deleted", map[string]string{"itemId": itemID})
	return nil
}
