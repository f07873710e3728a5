package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	pkgAuth "github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/auth/session"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Auth admits requests whose bearer token verifies and whose jti still has a
// live session. A nil checker skips the session lookup.
func Auth(cfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticate(r.Context(), cfg, sessions, validators.BearerToken(r))
			if err != nil {
				if pkgerrors.IsUnauthenticated(err) {
					w.Header().Set("WWW-Authenticate", `Bearer realm="storefront"`)
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			userID := claims.UserID.String()
			ctx := withAccessID(WithUserID(r.Context(), userID), claims.ID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(ctx context.Context, cfg config.JWTConfig, sessions session.AccessSessionChecker, token string) (*pkgAuth.AccessTokenClaims, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if sessions == nil {
		return claims, nil
	}
	live, err := sessions.HasSession(ctx, claims.ID)
	switch {
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
	case !live:
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
	}
	return claims, nil
}
