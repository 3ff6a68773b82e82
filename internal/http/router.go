package httpx

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/http/handlers"
	"github.com/superhecht1/praxida/internal/http/middleware"
)

// BuildRouter wires the auth endpoints and the guarded client record
// endpoints. The guard chain runs strictly before any domain handler.
func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.ClientHandlers, guard *middleware.Guard, clients domain.ClientRecordRepository, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)

	authed := r.Group("/auth").Use(guard.RequireSession())
	authed.POST("/logout", ah.Logout)
	authed.GET("/me", ah.Me)
	authed.POST("/change-password", ah.ChangePassword)

	clientTenant := clientTenantLoader(clients)
	staffOnly := guard.RequireRoles(domain.RoleAdministrator, domain.RolePractitioner)

	cl := r.Group("/clients").Use(guard.RequireSession())
	cl.GET("", ch.List)
	cl.POST("", staffOnly, ch.Create)
	cl.GET("/:id", guard.RequireTenantOwnership("id", clientTenant), ch.Get)
	cl.PUT("/:id", staffOnly, guard.RequireTenantOwnership("id", clientTenant), ch.Update)
	cl.DELETE("/:id", staffOnly, guard.RequireTenantOwnership("id", clientTenant), ch.Delete)

	return r
}

// clientTenantLoader adapts the client repository into the tenant-possession
// guard's loader shape. A malformed id reads as not found.
func clientTenantLoader(clients domain.ClientRecordRepository) middleware.TenantLoader {
	return func(ctx context.Context, id string) (uint, error) {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return 0, domain.ErrClientNotFound
		}
		rec, err := clients.FindByID(ctx, parsed)
		if err != nil {
			return 0, err
		}
		return rec.TenantID, nil
	}
}
