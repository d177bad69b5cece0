package services

import (
	"context"
	"time"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/metrics"
	"github.com/holisticagro/agromart/pkg/rbac"
)

// Order placement outcomes.
const (
	OrderCartCleared    = "cart_cleared"
	OrderCartNotCleared = "cart_not_cleared"
)

// Placement reports a stored order and whether the cart was emptied.
type Placement struct {
	InsertedID any    `json:"insertedId"`
	Outcome    string `json:"outcome"`
}

// StatusInput is the body of PATCH /update-order-status/{id}.
type StatusInput struct {
	Status string `json:"status" validate:"required,max=64"`
}

type OrderService struct {
	orders OrderStore
	carts  CartClearer
	roles  rbac.RoleResolver
	now    Clock
}

func NewOrderService(orders OrderStore, carts CartClearer, roles rbac.RoleResolver) *OrderService {
	return &OrderService{orders: orders, carts: carts, roles: roles, now: time.Now}
}

// Place stores the order for phone, then empties phone's cart. The two
// steps are not atomic: a failed or no-op clear still leaves the order in
// place and is reported as OrderCartNotCleared.
func (s *OrderService) Place(ctx context.Context, phone string, payload map[string]any) (*Placement, error) {
	log := logger.WithCtx(ctx)

	id, err := s.orders.Insert(ctx, models.NewOrder(payload, phone, s.now()))
	if err != nil {
		metrics.Outcome("order", "persist_failed")
		return nil, apperr.Wrap(apperr.CodeOrderPersistFailed, err, "")
	}

	p := &Placement{InsertedID: id, Outcome: OrderCartCleared}
	res, err := s.carts.ClearCart(ctx, phone)
	switch {
	case err != nil:
		log.Error("order stored but cart clear failed", "phone", phone, "order_id", id, "error", err)
		p.Outcome = OrderCartNotCleared
	case res.Modified == 0:
		log.Warn("order stored but cart not cleared", "phone", phone, "order_id", id, "matched", res.Matched)
		p.Outcome = OrderCartNotCleared
	}
	metrics.Outcome("order", p.Outcome)
	return p, nil
}

// List returns every order for an admin and the caller's own orders for
// anyone else.
func (s *OrderService) List(ctx context.Context, phone string) ([]map[string]any, error) {
	role, err := s.roles.RoleOf(ctx, phone)
	if err != nil {
		return nil, apperr.Store(err, "")
	}

	var orders []map[string]any
	if role == rbac.RoleAdmin {
		orders, err = s.orders.All(ctx)
	} else {
		orders, err = s.orders.ByPhone(ctx, phone)
	}
	if err != nil {
		return nil, apperr.Store(err, "")
	}
	return orders, nil
}

// UpdateStatus sets the status of the order with the hex id.
func (s *OrderService) UpdateStatus(ctx context.Context, rawID string, in StatusInput) (repositories.UpdateResult, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return repositories.UpdateResult{}, err
	}
	res, err := s.orders.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return repositories.UpdateResult{}, apperr.Store(err, "")
	}
	if res.Matched == 0 {
		return repositories.UpdateResult{}, apperr.NotFound("Order not found")
	}
	logger.WithCtx(ctx).Info("order status updated", "order_id", rawID, "status", in.Status)
	return res, nil
}
