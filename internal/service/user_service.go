package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

// ErrInvalidCredentials is returned by VerifyPassword for an unknown user or
// a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService keeps the in-memory user registry. Users only exist to own
// transactions; there is no login flow.
type UserService struct {
	mu     sync.RWMutex
	users  []ledger.User
	cost   int
	logger *logrus.Logger
}

// NewUserService creates an empty registry hashing passwords at cost.
// A cost of zero means bcrypt.DefaultCost.
func NewUserService(cost int, logger *logrus.Logger) *UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserService{cost: cost, logger: logger}
}

// EnsureDefaultUser creates the user owning API requests if it is missing.
func (s *UserService) EnsureDefaultUser(ctx context.Context, username, password string) (ledger.User, error) {
	if user, err := s.GetUserByUsername(ctx, username); err == nil {
		return user, nil
	}

	user, err := s.CreateUser(ctx, username, password)
	if err != nil {
		return ledger.User{}, fmt.Errorf("ensure default user: %w", err)
	}
	if user.ID != ledger.DefaultUserID {
		return ledger.User{}, fmt.Errorf("ensure default user: got id %d, want %d", user.ID, ledger.DefaultUserID)
	}
	s.logger.WithField("username", user.Username).Info("UserService.EnsureDefaultUser.created")
	return user, nil
}

// CreateUser registers username with a bcrypt hash of password.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (ledger.User, error) {
	if err := ctx.Err(); err != nil {
		return ledger.User{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return ledger.User{}, &ledger.ValidationError{Field: "username", Reason: "is required"}
	}
	if password == "" {
		return ledger.User{}, &ledger.ValidationError{Field: "password", Reason: "is required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return ledger.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return ledger.User{}, &ledger.ValidationError{Field: "username", Reason: "is already taken"}
		}
	}

	user := ledger.User{ID: len(s.users) + 1, Username: username, PasswordHash: hash}
	s.users = append(s.users, user)
	return user, nil
}

// GetUser returns the user with id or a *ledger.NotFoundError.
func (s *UserService) GetUser(ctx context.Context, id int) (ledger.User, error) {
	if err := ctx.Err(); err != nil {
		return ledger.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.users) {
		return ledger.User{}, &ledger.NotFoundError{Resource: "user", ID: id}
	}
	return s.users[id-1], nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (ledger.User, error) {
	if err := ctx.Err(); err != nil {
		return ledger.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return ledger.User{}, fmt.Errorf("user %q: %w", username, ErrInvalidCredentials)
}

// VerifyPassword returns the user when password matches its stored hash.
func (s *UserService) VerifyPassword(ctx context.Context, username, password string) (ledger.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return ledger.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return ledger.User{}, ErrInvalidCredentials
	}
	return user, nil
}
