package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"recruit-backend/internal/shared/auth"
)

const bcryptCost = 10

// AuthResult is a signed token plus the account it identifies.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Service implements account registration and login.
type Service struct {
	Repo UsersRepo
}

// NewService constructs a Service.
func NewService(repo UsersRepo) *Service {
	return &Service{Repo: repo}
}

// Register creates an account with a bcrypt-hashed password and signs a
// session token for it.
func (s *Service) Register(ctx context.Context, email, password, name string, companyName *string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return AuthResult{}, fmt.Errorf("%w: email, password and name are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		CompanyName:  companyName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	return s.issue(user)
}

// Login verifies credentials and signs a session token. Unknown emails and
// bad passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// EnsureOAuthUser finds the account for an externally authenticated email,
// creating a passwordless one on first sign-in, and signs a session token.
func (s *Service) EnsureOAuthUser(ctx context.Context, email, name string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return AuthResult{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return s.issue(user)
	}

	user = User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		// Another sign-in may have created the account concurrently.
		if existing, getErr := s.Repo.GetByEmail(ctx, email); getErr == nil {
			return s.issue(existing)
		}
		return AuthResult{}, err
	}
	return s.issue(user)
}

// Get returns an account by ID.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) issue(user User) (AuthResult, error) {
	token, err := auth.SignJWT(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}
