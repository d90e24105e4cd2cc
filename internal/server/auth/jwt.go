// Package auth implements the credential primitives of the server:
// signed access tokens (HS256 JWTs), bcrypt password hashing, and
// Authorization header parsing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer is the iss claim stamped into every access token.
const TokenIssuer = "chirpy"

// MakeJWT issues a signed access token for userID, valid for expiresIn from
// now. The token carries iss, sub, iat and exp claims; validity is entirely
// determined by the signature and the embedded expiry, nothing is persisted.
func MakeJWT(userID uuid.UUID, secret []byte, expiresIn time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	})

	return token.SignedString(secret)
}

// ValidateJWT verifies the signature and expiry of tokenString and returns
// the subject user id. Expired tokens yield common.ErrTokenExpired; any
// other defect (bad signature, malformed structure, missing or non-UUID
// subject) yields common.ErrInvalidToken.
func ValidateJWT(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, common.ErrTokenExpired
		}
		return uuid.Nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return uuid.Nil, common.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return uuid.Nil, common.ErrInvalidToken
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	return userID, nil
}
