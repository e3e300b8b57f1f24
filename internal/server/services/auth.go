// Package services contains the server business logic. AuthService owns
// accounts and cookie sessions: password hashing, session issuance and
// lookup, and the transactional register and login flows.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the adaptive hash work factor for stored passwords.
const BcryptCost = 10

// sessionTokenBytes is the size of the random bearer token (256 bits).
const sessionTokenBytes = 32

// AuthResult is the outcome of a successful register or login. Token is the
// raw session token; it is returned exactly once and only its hash is stored.
type AuthResult struct {
	User  *models.User
	Token string
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessionTTL  time.Duration
	now         func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt verification.
	dummyHash []byte
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = common.SessionTTL
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), BcryptCost)
	return &AuthService{
		db:          db,
		repomanager: m,
		sessionTTL:  ttl,
		now:         time.Now,
		dummyHash:   dummy,
	}
}

// SessionTTL is shared with the cookie Max-Age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// NormalizeEmail lowercases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes plain with bcrypt at BcryptCost.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether plain matches hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashSessionToken derives the stored session id from a raw token.
func HashSessionToken(token string) string {
	return common.SHA256Hex(token)
}

// createSession stores a new session for userID through tx and returns the raw token.
func (s *AuthService) createSession(ctx context.Context, tx dbx.DBTX, userID string) (string, error) {
	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}
	expires := s.now().Add(s.sessionTTL)
	if err := s.repomanager.Sessions(tx).Create(ctx, HashSessionToken(token), userID, expires); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}
	return token, nil
}

// Register creates the user and its first session in one transaction.
// A taken email yields common.ErrorAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var res AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, NormalizeEmail(email), hash)
		if err != nil {
			return err
		}
		token, err := s.createSession(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		res = AuthResult{User: user, Token: token}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	return &res, nil
}

// Login verifies credentials, drops every existing session of the user and
// issues a fresh one. Unknown email and wrong password both yield
// common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}
	user.PasswordHash = ""

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Sessions(tx).DeleteForUser(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting sessions: %w", err)
		}
		var err error
		token, err = s.createSession(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Authenticate resolves a raw session token to its user. Unknown or expired
// tokens yield common.ErrorUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	user, err := s.repomanager.Sessions(s.db).FindUser(ctx, HashSessionToken(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	return user, nil
}

// Logout deletes the session behind token and reports whether one existed.
func (s *AuthService) Logout(ctx context.Context, token string) (bool, error) {
	return s.repomanager.Sessions(s.db).Delete(ctx, HashSessionToken(token))
}
