package controllers

import (
	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

var orderMessages = map[string]string{
	services.OrderCartCleared:    "Order added successfully and cart cleared",
	services.OrderCartNotCleared: "Order added successfully but cart not cleared",
}

// Place handles POST /add-order. The caller's phone always becomes the
// order's userLoginNumber.
func (oc *OrderController) Place(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Fail(apperr.Unauthenticated())
		return
	}
	payload, ok := c.BindObject()
	if !ok {
		return
	}
	p, err := oc.service.Place(c.Context(), id.Phone, payload)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(orderMessages[p.Outcome], p)
}

// List handles GET /orders.
func (oc *OrderController) List(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Fail(apperr.Unauthenticated())
		return
	}
	orders, err := oc.service.List(c.Context(), id.Phone)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(orders)
}

// UpdateStatus handles PATCH /update-order-status/{id}.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	var in services.StatusInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := oc.service.UpdateStatus(c.Context(), c.Param("id"), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message("Order status updated", res)
}
