package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/config"
)

var tokenCfg = config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 30}

func mint(t *testing.T, at time.Time, payload AccessTokenPayload) string {
	t.Helper()
	token, _, err := MintAccessToken(tokenCfg, at, payload)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return token
}

func TestMintRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	userID := uuid.New()

	token, expiresAt, err := MintAccessToken(tokenCfg, now, AccessTokenPayload{UserID: userID, Email: "dev@example.com", JTI: "jti-1"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !expiresAt.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := ParseAccessToken(tokenCfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID || claims.Email != "dev@example.com" || claims.ID != "jti-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Subject != userID.String() || claims.Issuer != "storefront" {
		t.Fatalf("unexpected registered claims %+v", claims.RegisteredClaims)
	}
}

func TestMintGeneratesJTI(t *testing.T) {
	claims, err := ParseAccessToken(tokenCfg, mint(t, time.Now(), AccessTokenPayload{UserID: uuid.New(), JTI: "  "}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Fatalf("expected generated uuid jti, got %q", claims.ID)
	}
}

func TestMintValidatesConfig(t *testing.T) {
	userID := uuid.New()
	for name, cfg := range map[string]config.JWTConfig{
		"secret": {Issuer: "storefront", ExpirationMinutes: 5},
		"issuer": {Secret: "s", ExpirationMinutes: 5},
		"ttl":    {Secret: "s", Issuer: "storefront"},
	} {
		if _, _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: userID}); err == nil {
			t.Fatalf("missing %s accepted", name)
		}
	}
	if _, _, err := MintAccessToken(tokenCfg, time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected missing user error")
	}
}

func TestParseRejectsTampering(t *testing.T) {
	token := mint(t, time.Now(), AccessTokenPayload{UserID: uuid.New()})

	if _, err := ParseAccessToken(tokenCfg, token+"x"); err == nil {
		t.Fatal("expected bad signature error")
	}
	other := tokenCfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer mismatch")
	}
	if _, err := ParseAccessTokenAllowExpired(other, token); err == nil {
		t.Fatal("expected issuer mismatch on refresh parse")
	}
	other = tokenCfg
	other.Secret = "rotated"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestExpiredTokenOnlyParsesForRefresh(t *testing.T) {
	token := mint(t, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})

	if _, err := ParseAccessToken(tokenCfg, token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
	claims, err := ParseAccessTokenAllowExpired(tokenCfg, token)
	if err != nil || claims.ID == "" {
		t.Fatalf("expired token should parse for refresh: claims=%v err=%v", claims, err)
	}
}

func TestClockSkewTolerated(t *testing.T) {
	cfg := tokenCfg
	cfg.ExpirationMinutes = 1
	token, _, err := MintAccessToken(cfg, time.Now().Add(-time.Minute-10*time.Second), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err != nil {
		t.Fatalf("token within skew rejected: %v", err)
	}
}
