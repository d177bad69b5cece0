package services

import (
	"context"
	"errors"
	"time"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
)

// RegisterInput is the body of POST /user. A submitted role is ignored.
type RegisterInput struct {
	Phone    string `json:"phone"    validate:"required,max=32"`
	Name     string `json:"name"     validate:"max=200"`
	Email    string `json:"email"    validate:"omitempty,email"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

type UserService struct {
	users UserStore
	now   Clock
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, now: time.Now}
}

// Register creates the user unless the phone is already known. existed
// reports which case happened; the returned user is nil when it existed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (_ *models.User, existed bool, err error) {
	_, err = s.users.FindByPhone(ctx, in.Phone)
	switch {
	case err == nil:
		return nil, true, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, false, apperr.Store(err, "")
	}

	u := models.NewUser(in.Phone, in.Name, in.Email, in.PhotoURL, s.now())
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, true, nil
		}
		return nil, false, apperr.Store(err, "")
	}
	logger.WithCtx(ctx).Info("user registered", "phone", u.Phone)
	return u, false, nil
}

// Get returns the user registered under phone.
func (s *UserService) Get(ctx context.Context, phone string) (*models.User, error) {
	u, err := s.users.FindByPhone(ctx, phone)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperr.NotFound("User not found")
	case err != nil:
		return nil, apperr.Store(err, "")
	}
	return u, nil
}
