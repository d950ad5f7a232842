package controllers

import (
	"net/http"

	"github.com/kartiksheoranexe/InventoryManagement/api/responses"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/config"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/logger"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-InvMgt-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both the database and Redis
// answer a ping.
func HealthReady(cfg *config.Config, database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-InvMgt-Env", cfg.App.Env)

		if database == nil || cache == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "health dependencies unavailable"))
			return
		}
		if err := database.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database ping"))
			return
		}
		if err := cache.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "redis ping"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
