package nurse

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/visitdocs/visitdocs/internal/platform/auth"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
}

func NewService(repo Repository, issuer *auth.TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Register creates the account and returns a fresh session token, so a
// new nurse is signed in immediately after registering.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, errors.New("email, password and full_name are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	n := &Nurse{
		Email:         req.Email,
		PasswordHash:  hash,
		FullName:      strings.TrimSpace(req.FullName),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		if IsDuplicateEmail(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.issuer.Issue(n.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Nurse: n}, nil
}

// Login verifies the credentials and issues a session token. The error is
// the same whether the email is unknown or the password is wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	n, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(req.Password, n.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(n.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Nurse: n}, nil
}

// Me returns the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*Nurse, error) {
	return s.repo.GetByID(ctx, id)
}
