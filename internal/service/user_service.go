package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// DTO for returning User without exposing the password hash
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"createdAt"`
}

type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// UserService is the authentication provider: accounts and session tokens
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Me(ctx context.Context, s *auth.Session) (*UserResponse, error)
}

type userService struct {
	repo   repository.UserRepository
	issuer *auth.Issuer
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, issuer *auth.Issuer) UserService {
	return &userService{repo: repo, issuer: issuer}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

func mapToResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, invalid("email", "invalid email format")
	}
	if len(req.Password) < 6 {
		return nil, invalid("password", "must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *userService) Me(ctx context.Context, sess *auth.Session) (*UserResponse, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.repo.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	resp := mapToResponse(user)
	return &resp, nil
}

func (s *userService) issue(user *model.User) (*TokenResponse, error) {
	token, err := s.issuer.Issue(auth.Session{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{
		Token:     token,
		ExpiresIn: int64(s.issuer.TTL().Seconds()),
		User:      mapToResponse(user),
	}, nil
}
