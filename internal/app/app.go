package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/superhecht1/praxida/internal/config"
	httpx "github.com/superhecht1/praxida/internal/http"
	"github.com/superhecht1/praxida/internal/http/handlers"
	"github.com/superhecht1/praxida/internal/http/middleware"
)

// Run wires the service and blocks serving HTTP.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, cfg.CookieName, cfg.CookieSecure, int(cfg.SessionTTL.Seconds()))
	clientH := handlers.NewClientHandlers(c.ClientRepo)
	guard := middleware.NewGuard(c.CarrierSvc, c.SessionSvc, cfg.CookieName)

	r := httpx.BuildRouter(authH, clientH, guard, c.ClientRepo, c.Registry)

	if cfg.AttemptRetention > 0 {
		go pruneAttempts(c, cfg.AttemptRetention)
	}

	addr := ":" + cfg.Port
	c.Logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// pruneAttempts periodically drops ledger entries past the retention horizon.
// Pruning is idempotent and safe to run alongside live traffic and other
// replicas.
func pruneAttempts(c *Container, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-retention)
		n, err := c.AttemptRepo.DeleteOlderThan(context.Background(), cutoff)
		if err != nil {
			c.Logger.Error("ledger prune failed", zap.Error(err))
			continue
		}
		if n > 0 {
			c.Logger.Info("ledger pruned", zap.Int64("deleted", n))
		}
	}
}
