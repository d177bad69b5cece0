package controllers

import (
	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Issue signs the posted claims. POST /authentication
func (a *AuthController) Issue(c *ctx.Context) {
	claims, ok := c.BindObject()
	if !ok {
		return
	}
	token, err := a.service.Issue(c.Context(), claims)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(token)
}
