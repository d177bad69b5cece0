package services

import (
	"context"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/metrics"
)

// Cart outcomes.
const (
	CartAdded          = "added"
	CartAlreadyPresent = "already_in_cart"
)

type CartService struct {
	carts CartStore
}

func NewCartService(carts CartStore) *CartService {
	return &CartService{carts: carts}
}

// Add puts snapshot into phone's cart unless a structurally identical line
// is already there. It is one atomic update.
func (s *CartService) Add(ctx context.Context, phone string, snapshot map[string]any) (string, error) {
	line, err := models.NewCartLine(snapshot)
	if err != nil {
		return "", apperr.Validation(err.Error())
	}

	res, err := s.carts.AddToCart(ctx, phone, line)
	if err != nil {
		metrics.Outcome("cart", "store_failure")
		return "", apperr.Wrap(apperr.CodeStoreFailure, err, "Failed to add product to cart")
	}
	if res.Matched == 0 {
		metrics.Outcome("cart", "user_not_found")
		return "", apperr.NotFound("User not found")
	}

	outcome := CartAdded
	if res.Modified == 0 {
		outcome = CartAlreadyPresent
	}
	metrics.Outcome("cart", outcome)
	logger.WithCtx(ctx).Debug("cart updated", "phone", phone, "outcome", outcome)
	return outcome, nil
}
