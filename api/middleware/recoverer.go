package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Recoverer converts a handler panic into a 500 envelope, unless the handler
// already started its response. http.ErrAbortHandler propagates.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				err := fmt.Errorf("panic: %v", v)
				if logg != nil {
					// Error attaches the stack.
					logg.Error(logg.WithField(r.Context(), "panic", fmt.Sprint(v)), "panic.recovered", err)
				}
				if rec.status == 0 {
					responses.WriteError(r.Context(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
