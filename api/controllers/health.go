package controllers

import (
	"net/http"

	"github.com/javiercanto/orderdesk-backend/api/responses"
	"github.com/javiercanto/orderdesk-backend/pkg/config"
	pkgerrors "github.com/javiercanto/orderdesk-backend/pkg/errors"
	"github.com/javiercanto/orderdesk-backend/pkg/logger"
	"github.com/javiercanto/orderdesk-backend/pkg/redis"
	"github.com/javiercanto/orderdesk-backend/pkg/sheets"
	"go.uber.org/multierr"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Orderdesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing dependency and reports the first
// combined failure, if any.
func HealthReady(cfg *config.Config, logg *logger.Logger, sheetsP sheets.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Orderdesk-Env", cfg.App.Env)

		var err error
		if sheetsP != nil {
			err = multierr.Append(err, sheetsP.Ping(r.Context()))
		}
		if redisP != nil {
			err = multierr.Append(err, redisP.Ping(r.Context()))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependencies unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
