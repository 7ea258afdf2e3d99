package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/auth"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/users"
	"github.com/google/uuid"
)

// RegisterInput is the data accepted for a new account.
type RegisterInput struct {
	UserName string
	Email    string
	Password string
	Role     string
}

// UserService registers accounts and exchanges credentials for tokens.
type UserService struct {
	users  users.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenCodec
	logger logging.Logger
}

func NewUserService(repo users.Repository, hasher *auth.PasswordHasher, tokens *auth.TokenCodec, logger logging.Logger) *UserService {
	return &UserService{
		users:  repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "users"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates in, hashes the password and stores the user. A taken
// email yields ErrEmailTaken, which wraps common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.UserName)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, validationError("username is required")
	case email == "":
		return nil, validationError("email is required")
	case !strings.Contains(email, "@"):
		return nil, validationError("email is invalid")
	}

	role, err := auth.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		UserName:     name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, storeError(ctx, s.logger, "register", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// TokenTTL is the lifetime of tokens returned by Login.
func (s *UserService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Login checks the password of the account registered under email and
// returns a signed token carrying the account's id and role.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", validationError("email and password are required")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", ErrUserNotFound
		}
		return "", storeError(ctx, s.logger, "login", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		s.logger.Warn(ctx, "login rejected", "user_id", u.ID)
		return "", ErrInvalidCredentials
	}

	role, err := auth.ParseRole(u.Role)
	if err != nil {
		s.logger.Error(ctx, "stored user has unknown role", "user_id", u.ID, "role", u.Role)
		return "", common.ErrorInternal
	}
	token, err := s.tokens.Issue(u.ID, role)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", u.ID, "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}
