package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	activityapp "github.com/nexbasket/backend/internal/application/activity"
	"github.com/nexbasket/backend/internal/domain/activity"
	"github.com/nexbasket/backend/internal/domain/identity"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for a wrong email or password.
// The two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Email or password is incorrect")

// TokenIssuer signs tokens for authenticated users
type TokenIssuer interface {
	Generate(userID uuid.UUID, email, role string) (*auth.Token, error)
}

// Service handles registration and login
type Service struct {
	users      identity.Repository
	tokens     TokenIssuer
	activities *activityapp.Service
}

// NewService creates a new identity service
func NewService(users identity.Repository, tokens TokenIssuer, activities *activityapp.Service) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		activities: activities,
	}
}

// Register creates a customer account and signs the user in
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	u, err := identity.NewUser(req.Name, req.Email, req.Phone, req.Password, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeUserRegistered,
		fmt.Sprintf("User %s registered", u.Name), &u.ID, &u.ID)

	return s.issueToken(u)
}

// Login verifies credentials and returns a signed token
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been deactivated")
	}

	return s.issueToken(u)
}

// Get returns a user by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// List returns users matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	page, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToUserPage(page), nil
}

// Deactivate blocks an account from logging in
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Deactivate()
	return s.users.Save(ctx, u)
}

func (s *Service) issueToken(u *identity.User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(u.ID, u.Email, u.Role.String())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserResponse(u),
	}, nil
}
