package app

import (
	"context"

	"aurora_hotel/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.users.ByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *UserService) ByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range us {
		us[i].PasswordHash = ""
	}
	return us, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
