package controllers

import (
	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/ctx"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

var cartMessages = map[string]string{
	services.CartAdded:          "Product added to the cart successfully",
	services.CartAlreadyPresent: "Product is already in the cart",
}

// Add handles PATCH /add-to-cart. The body is the product snapshot.
func (cc *CartController) Add(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Fail(apperr.Unauthenticated())
		return
	}
	snapshot, ok := c.BindObject()
	if !ok {
		return
	}
	outcome, err := cc.service.Add(c.Context(), id.Phone, snapshot)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(cartMessages[outcome], map[string]string{"outcome": outcome})
}
