// Package auth mints and verifies the HS256 access tokens handed to shoppers.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/config"
)

// clockSkew is tolerated on exp and iat when verifying.
const clockSkew = 30 * time.Second

var errNoSecret = errors.New("jwt secret is required")

// AccessTokenPayload is the input to MintAccessToken.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Email  string
	// JTI doubles as the session key; a fresh one is generated when empty.
	JTI string
}

// AccessTokenClaims is the body of a shopper access token.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// MintAccessToken signs a token for payload valid from now for the configured ttl.
func MintAccessToken(cfg config.JWTConfig, now time.Time, payload AccessTokenPayload) (string, time.Time, error) {
	if err := checkSigningConfig(cfg); err != nil {
		return "", time.Time{}, err
	}
	if payload.UserID == uuid.Nil {
		return "", time.Time{}, errors.New("user id is required")
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}
	expiresAt := now.Add(cfg.AccessTokenTTL())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		UserID: payload.UserID,
		Email:  payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    cfg.Issuer,
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, expiresAt, nil
}

func checkSigningConfig(cfg config.JWTConfig) error {
	switch {
	case cfg.Secret == "":
		return errNoSecret
	case cfg.Issuer == "":
		return errors.New("jwt issuer is required")
	case cfg.ExpirationMinutes <= 0:
		return errors.New("jwt expiration minutes must be positive")
	}
	return nil
}

// ParseAccessToken verifies signature, issuer and expiry.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessTokenClaims, error) {
	return verify(cfg, raw, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired(), jwt.WithLeeway(clockSkew))
}

// ParseAccessTokenAllowExpired verifies the signature only, so a refresh can
// still read the jti of an expired token.
func ParseAccessTokenAllowExpired(cfg config.JWTConfig, raw string) (*AccessTokenClaims, error) {
	claims, err := verify(cfg, raw, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if claims.Issuer != cfg.Issuer {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	return claims, nil
}

func verify(cfg config.JWTConfig, raw string, opts ...jwt.ParserOption) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, errNoSecret
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := new(AccessTokenClaims)
	if _, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...); err != nil {
		return nil, err
	}
	return claims, nil
}
