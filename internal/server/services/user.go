// Package services contains server-side business logic. This file implements
// UserService, which registers users, checks Basic credentials and manages
// opaque session tokens kept in the cache store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/cache"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenKeyPrefix = "auth_"

// TokenKey is the cache key holding the user id for token.
func TokenKey(token string) string {
	return tokenKeyPrefix + token
}

// UserService provides authentication-related operations:
// - RegisterUser: create users with a bcrypt password hash
// - AuthenticateBasic: verify email and password
// - IssueToken / ResolveToken / RevokeToken: session token lifecycle
type UserService struct {
	users    users.Repository
	cache    cache.Cache
	tokenTTL time.Duration
	logger   logging.Logger

	cost      int
	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService. Tokens expire from the cache after
// tokenTTL.
func NewUserService(repo users.Repository, c cache.Cache, tokenTTL time.Duration, logger logging.Logger) *UserService {
	return &UserService{
		users:    repo,
		cache:    c,
		tokenTTL: tokenTTL,
		logger:   logger.With("module", "users"),
		cost:     bcrypt.DefaultCost,
	}
}

// RegisterUser stores a new user. The email check runs first, so a request
// missing both fields reports the email.
func (s *UserService) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, common.NewValidationError("Missing email")
	}
	if password == "" {
		return nil, common.NewValidationError("Missing password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.NewValidationError("Password too long")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// AuthenticateBasic returns the user matching email and password, or nil
// when either is wrong. A hash comparison runs even for unknown emails so both
// failures take the same path.
func (s *UserService) AuthenticateBasic(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error loading user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

// ParseBasic splits decoded Basic credentials. The password is everything
// after the first colon and may itself contain colons.
func ParseBasic(decoded string) (email, password string, ok bool) {
	return strings.Cut(decoded, ":")
}

// IssueToken creates a fresh session token for user. Earlier tokens stay valid.
func (s *UserService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, TokenKey(token), user.ID, s.tokenTTL); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// ResolveToken returns the token's user, or nil when the token is unknown,
// expired, or points at a user that no longer exists.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, err := s.cache.Get(ctx, TokenKey(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "token references missing user", "user_id", userID)
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// RevokeToken deletes the token. Unknown tokens are not an error.
func (s *UserService) RevokeToken(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, TokenKey(token)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *UserService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	})
	return s.dummyHash
}
