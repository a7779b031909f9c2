package services

import (
	"context"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Ban(ctx context.Context, id string) error
	Unban(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.client.ListUsers(ctx)
}

func (s *userService) Ban(ctx context.Context, id string) error {
	return s.client.BanUser(ctx, id)
}

func (s *userService) Unban(ctx context.Context, id string) error {
	return s.client.UnbanUser(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}
