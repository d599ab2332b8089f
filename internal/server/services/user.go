// Package services contains server-side business logic. This file implements
// UserService, which handles signup, credential verification, and issuing
// JWTs. Sessions are stateless: nothing is persisted on login beyond the
// token handed back to the caller.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/imorozov/carbook/internal/common"
	"github.com/imorozov/carbook/internal/dbx"
	"github.com/imorozov/carbook/internal/server/auth"
	"github.com/imorozov/carbook/internal/server/config"
	"github.com/imorozov/carbook/internal/server/models"
	"github.com/imorozov/carbook/internal/server/repositories/repomanager"
)

// bcryptCost matches the cost the original deployment used for stored hashes.
const bcryptCost = 10

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint an access token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt-hashed password. An empty
// username or password yields common.ErrorValidation; a taken username yields
// common.ErrorConflict. The existence check and the insert run in one
// transaction; the unique index on username remains the hard guarantee.
func (s *UserService) Register(ctx context.Context, username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{ID: uuid.NewString(), UserName: username, PasswordHash: string(hash)}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByUsername(ctx, username)
		if err == nil {
			return common.ErrorConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking username: %w", err)
		}

		_, err = repo.Create(ctx, user)
		return err
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the password against the stored bcrypt hash and, on success,
// returns a signed access token. Unknown username and wrong password are
// indistinguishable to the caller: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username string, password string) (string, error) {
	if username == "" || password == "" {
		return "", common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
