// Package controllers adapts HTTP requests to the service workflows. Each
// handler binds input, calls one service method and renders the result.
package controllers

import (
	"github.com/holisticagro/agromart/app/services"
)

// Set groups every controller the route table mounts.
type Set struct {
	Auth      *AuthController
	Users     *UserController
	Catalog   *CatalogController
	Cart      *CartController
	Orders    *OrderController
	Documents *DocumentController
}

// Services are the workflows the controllers call.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Catalog   *services.CatalogService
	Cart      *services.CartService
	Orders    *services.OrderService
	Documents *services.DocumentService
}

// NewSet builds every controller. maxUpload caps multipart bodies.
func NewSet(s Services, maxUpload int64) *Set {
	return &Set{
		Auth:      NewAuthController(s.Auth),
		Users:     NewUserController(s.Users),
		Catalog:   NewCatalogController(s.Catalog),
		Cart:      NewCartController(s.Cart),
		Orders:    NewOrderController(s.Orders),
		Documents: NewDocumentController(s.Documents, maxUpload),
	}
}
