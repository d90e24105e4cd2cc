// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, issuing/refreshing access
// tokens, server-stored refresh token lifecycle, and credential updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/dbx"
	"github.com/dmitrijs2005/chirpy/internal/server/auth"
	"github.com/dmitrijs2005/chirpy/internal/server/config"
	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// refreshTokenBytes is the entropy drawn for each refresh token; hex-encoded
// it yields a 64-character string.
const refreshTokenBytes = 32

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: create users
//   - Login: verify credentials and mint a token pair
//   - Refresh: exchange a usable refresh token for a new access token
//   - Revoke: invalidate a refresh token (idempotent)
//   - UpdateCredentials: self-service email/password change
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	rotateRefreshOnLogin         bool
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		rotateRefreshOnLogin:         cfg.RotateRefreshOnLogin,
	}
}

// CanonicalEmail normalizes an email for storage and lookup: trimmed and
// lowercased, so uniqueness is effectively case-insensitive.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with the given email and password. A duplicate
// email fails with common.ErrorConflict without creating a partial record.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = CanonicalEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrorBadRequest
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Login verifies the credentials and, on success, returns the user together
// with a fresh token pair. An unknown email and a wrong password collapse
// into the same common.ErrorUnauthorized so account existence never leaks.
// requestedTTL is the client's optional access-token TTL wish; it is clamped
// to the configured default when absent, non-positive, or too large.
func (s *UserService) Login(ctx context.Context, email, password string, requestedTTL time.Duration) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, CanonicalEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if err := auth.CheckPasswordHash(password, user.HashedPassword); err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	ttl := s.clampAccessTokenTTL(requestedTTL)

	var pair *TokenPair
	if s.rotateRefreshOnLogin {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.repomanager.RefreshTokens(tx).RevokeAllForUser(ctx, user.ID); err != nil {
				return err
			}
			var genErr error
			pair, genErr = s.generateTokenPair(ctx, user.ID, ttl, tx)
			return genErr
		})
	} else {
		pair, err = s.generateTokenPair(ctx, user.ID, ttl, s.db)
	}
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, pair, nil
}

// Refresh exchanges a usable refresh token for a new access token. The
// refresh token itself is unchanged and remains valid until its own expiry
// or explicit revocation. A missing, revoked, or expired token yields
// common.ErrorUnauthorized (expiry specifically as ErrRefreshTokenExpired).
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if token.RevokedAt.Valid {
		return "", common.ErrorUnauthorized
	}
	if !time.Now().Before(token.ExpiresAt) {
		return "", common.ErrRefreshTokenExpired
	}

	access, err := auth.MakeJWT(token.UserID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return access, nil
}

// Revoke invalidates a refresh token. Revoking an unknown or already-revoked
// token is not an error; the operation is idempotent.
func (s *UserService) Revoke(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens(s.db).Revoke(ctx, refreshToken); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// UpdateCredentials replaces the caller's email and password. Both values
// are required; partial updates are not supported.
func (s *UserService) UpdateCredentials(ctx context.Context, userID uuid.UUID, email, password string) (*models.User, error) {
	email = CanonicalEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrorBadRequest
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).UpdateCredentials(ctx, userID, email, hashed)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Reset deletes every user; chirps and refresh tokens follow via cascade.
// Exposed only on the dev platform through the admin surface.
func (s *UserService) Reset(ctx context.Context) error {
	if err := s.repomanager.Users(s.db).DeleteAll(ctx); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// clampAccessTokenTTL applies the access-token TTL policy: the configured
// validity duration is both the default and the ceiling.
func (s *UserService) clampAccessTokenTTL(requested time.Duration) time.Duration {
	if requested <= 0 || requested > s.accessTokenValidityDuration {
		return s.accessTokenValidityDuration
	}
	return requested
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(refreshTokenBytes)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID uuid.UUID, accessTTL time.Duration, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.MakeJWT(userID, s.jwtSecret, accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
