package service

import (
	"context"

	"palcolivre/api/internal/ids"
	"palcolivre/api/internal/models"
)

type CartService interface {
	// Add puts quantity units of an instrument in the user's cart. Adding
	// an instrument already present merges into the existing row.
	Add(ctx context.Context, userID string, instrumentID string, quantidade int) (models.CartItem, error)
	List(ctx context.Context, userID string) ([]models.CartEntry, error)
	Remove(ctx context.Context, userID string, itemID string) error
}

type cartService struct {
	items       CartStore
	instruments InstrumentStore
}

func NewCartService(items CartStore, instruments InstrumentStore) CartService {
	return &cartService{items: items, instruments: instruments}
}

func (s *cartService) Add(ctx context.Context, userID string, instrumentID string, quantidade int) (models.CartItem, error) {
	if instrumentID == "" {
		return models.CartItem{}, ValidationError("instrumento e quantidade são obrigatórios")
	}
	if quantidade <= 0 {
		return models.CartItem{}, ValidationError("quantidade deve ser maior que zero")
	}

	if _, err := s.instruments.GetByID(ctx, instrumentID); err != nil {
		return models.CartItem{}, err
	}

	item := models.CartItem{
		ID:           ids.New(),
		UserID:       userID,
		InstrumentID: instrumentID,
		Quantidade:   quantidade,
	}
	return s.items.Upsert(ctx, item)
}

func (s *cartService) List(ctx context.Context, userID string) ([]models.CartEntry, error) {
	return s.items.ListByUser(ctx, userID)
}

func (s *cartService) Remove(ctx context.Context, userID string, itemID string) error {
	return s.items.Delete(ctx, userID, itemID)
}
