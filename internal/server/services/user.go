// Package services contains the todo API business logic. UserService covers
// registration, login and user lookups; TaskService covers todo items and
// their ownership rules.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapi/internal/shared"
)

// PasswordHasher is implemented by auth.BcryptHasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer is implemented by auth.Issuer.
type TokenIssuer interface {
	IssueAccessToken(subject string) (string, error)
}

// UserService provides authentication-related operations:
// - Register: create users with a hashed password
// - Login: verify credentials and mint an access token
// - Get, List: read user records
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	issuer      TokenIssuer
	logger      logging.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, issuer TokenIssuer, logger logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		logger:      logger.With("module", "users"),
	}
}

// Register validates the credentials, hashes the password and stores the
// user. A taken email fails with common.ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	in := Credentials{Email: normalizeEmail(email), Password: password}
	if err := in.validateRegistration(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, in.Email, hash)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login returns an access token for valid credentials. Unknown emails and
// wrong passwords both fail with common.ErrInvalidCredentials, and both pay
// for one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	in := Credentials{Email: normalizeEmail(email), Password: password}
	if err := in.validateLogin(); err != nil {
		return "", err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.spendVerify(ctx, in.Password)
			s.logger.Debug(ctx, "login failed", "reason", "unknown email")
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.logger.Debug(ctx, "login failed", "reason", "wrong password", "user_id", user.ID)
		return "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// Get returns the user with id or common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// List pages through users ordered by creation time.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	skip, limit, err := page(skip, limit)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).List(ctx, skip, limit)
}

// spendVerify runs one bcrypt comparison against a dummy hash so unknown
// emails take as long as wrong passwords. Until the dummy hash can be built
// it hashes the password instead.
func (s *UserService) spendVerify(ctx context.Context, password string) {
	hash, err := s.dummy()
	if err != nil {
		s.logger.Error(ctx, "cannot prepare dummy password hash", "error", err)
		_, _ = s.hasher.Hash(password)
		return
	}
	s.hasher.Verify(password, hash)
}

// dummy returns a hash of a random password. A failed build is retried on
// the next call.
func (s *UserService) dummy() (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash != "" {
		return s.dummyHash, nil
	}
	plain, err := shared.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return "", err
	}
	s.dummyHash = hash
	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
