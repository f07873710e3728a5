package controllers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is anything HealthReady can probe.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency in parallel. Any failure answers 503
// naming the failing dependencies; their errors go to the log only.
func HealthReady(cfg *config.Config, deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		var (
			mu     sync.Mutex
			failed = map[string]string{}
			g      errgroup.Group
		)
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			g.Go(func() error {
				if err := dep.Ping(ctx); err != nil {
					mu.Lock()
					failed[name] = err.Error()
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		if len(failed) > 0 {
			names := make([]string, 0, len(failed))
			for name, msg := range failed {
				names = append(names, name)
				if logg != nil {
					logg.Warn(logg.WithFields(r.Context(), map[string]any{"dependency": name, "error": msg}), "health.dependency_down")
				}
			}
			sort.Strings(names)
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
				WithDetails(map[string]any{"dependencies": names}))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
