package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/models/dto"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

// Service orchestrates registration and login. It holds no state of its own
// beyond its collaborators.
type Service struct {
	store  storage.UserStore
	tokens *TokenManager
	logger *slog.Logger
}

// NewService constructs the auth service.
func NewService(store storage.UserStore, tokens *TokenManager, logger *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, logger: logger}
}

// Register creates a user with a single role. No token is minted; login is a
// separate step.
func (s *Service) Register(ctx context.Context, fullName, email, password, roleName string) error {
	_, err := s.store.FindUserByEmail(ctx, email)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up email: %w", err)
	}

	role, err := s.store.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		return fmt.Errorf("look up role: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Roles:        []models.Role{role},
	}
	if _, err := s.store.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("user registered", "email", email, "role", roleName)
	return nil
}

// Login verifies credentials, checks membership of the requested role, and
// mints a token. The access check uses only the requested role, but the
// minted token carries the user's full role set.
func (s *Service) Login(ctx context.Context, email, password, roleName string, now time.Time) (dto.AuthResponse, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, fmt.Errorf("look up email: %w", err)
	}
	if !CheckPassword(password, user.PasswordHash) {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	selected, err := s.store.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.AuthResponse{}, fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		return dto.AuthResponse{}, fmt.Errorf("look up role: %w", err)
	}
	if !user.HasRole(selected.Name) {
		return dto.AuthResponse{}, ErrAccessDenied
	}

	claims := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		claims = append(claims, strings.ToUpper(r.Name))
	}

	token, err := s.tokens.Mint(user.Email, claims, now)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("mint token: %w", err)
	}

	s.logger.Info("user logged in", "email", email, "role", roleName)
	return newAuthResponse(token, user), nil
}

func newAuthResponse(token string, user models.User) dto.AuthResponse {
	role := "user"
	if len(user.Roles) > 0 {
		role = strings.ToLower(strings.TrimPrefix(user.Roles[0].Name, "ROLE_"))
	}
	return dto.AuthResponse{
		Token:  token,
		ID:     user.ID,
		Name:   user.FullName,
		Email:  user.Email,
		Role:   role,
		Avatar: avatarURL(user.FullName),
	}
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(name, " ", "+") + "&background=random"
}
