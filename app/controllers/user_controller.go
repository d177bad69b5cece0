package controllers

import (
	"github.com/holisticagro/agromart/app/services"
	"github.com/holisticagro/agromart/pkg/ctx"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Register handles POST /user.
func (u *UserController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	user, existed, err := u.service.Register(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	if existed {
		c.Message("User already exists", nil)
		return
	}
	c.Created("User created", user)
}

// Show handles GET /user/{phone}.
func (u *UserController) Show(c *ctx.Context) {
	user, err := u.service.Get(c.Context(), c.Param("phone"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(user)
}
