package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"aurora_hotel/internal/domain"
)

type AuthService struct {
	users  domain.UserRepository
	tokens *TokenManager
	now    func() time.Time
}

func NewAuthService(users domain.UserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

type RegisterInput struct {
	Email       string
	Name        string
	PhoneNumber string
	Password    string
	Role        domain.Role
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      domain.Role
	UserID    int64
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("email %q: %w", in.Email, errValidation("a valid email is required"))
	}
	if len(in.Password) < 6 {
		return domain.User{}, errValidation("password must be at least 6 characters")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return domain.User{}, errValidation("unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hash),
		Role:         role,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	u.PasswordHash = "" // never hand the hash back out
	return u, nil
}

// Login deliberately reports the same error for an unknown email and a
// wrong password so the endpoint can't be used to probe registrations.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, domain.ErrUnauthorized
		}
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, domain.ErrUnauthorized
	}
	token, exp, err := s.tokens.Issue(u, s.now())
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: token, ExpiresAt: exp, Role: u.Role, UserID: u.ID}, nil
}
