package cart

import (
	"context"
	"errors"

	"github.com/acestore/acestore-api/logger"
)

// Service owns a session's cart aggregate: it rehydrates the cart from the
// store, applies one mutation, and re-serializes the full state back. It is
// constructor-injected wherever a cart is needed so tests can run isolated
// carts against a memory store.
type Service struct {
	store Store
	log   *logger.Logger
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Get returns the session's cart, falling back to an empty cart when the
// stored state is corrupt. Corruption is logged and otherwise swallowed.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrCorruptState) {
		s.log.Warn("discarding corrupt cart state", "session", sessionID, "error", err)
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, product ProductSnapshot, variant VariantSnapshot, quantity int) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(product, variant, quantity); err != nil {
		return nil, err
	}
	return c, s.store.Save(ctx, sessionID, c)
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, variantID string) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(variantID)
	return c, s.store.Save(ctx, sessionID, c)
}

func (s *Service) SetQuantity(ctx context.Context, sessionID, variantID string, quantity int) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(variantID, quantity)
	return c, s.store.Save(ctx, sessionID, c)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	c := New()
	return s.store.Save(ctx, sessionID, c)
}
