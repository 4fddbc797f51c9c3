package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/greenwave/conference-ticketing/internal/config"
	"github.com/greenwave/conference-ticketing/internal/handler"
	"github.com/greenwave/conference-ticketing/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// static ticket type catalog and the workshop schedule with remaining
// capacities. Both are read-only and identical for every caller, so
// they sit behind the Redis response cache when one is configured.
func RegisterPublic(e *echo.Echo, t *handler.TicketHandler, w *handler.WorkshopHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.CatalogCache(cacheCfg, rdb))
	g.GET("/ticket-types", t.ListTypes)
	g.GET("/workshops", w.List)
}

// RegisterAuth registers the session endpoints under /v1/auth. None of
// them require an existing access token: register and login create
// sessions, refresh and logout are driven by the refresh token in the
// request body.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterAttendee registers the endpoints that operate on the
// authenticated attendee: profile management, the ticket lifecycle
// (purchase, upgrade, cancel) and workshop reservations. All of them
// require a valid access token carrying the ATTENDEE role.
func RegisterAttendee(e *echo.Echo, acc *handler.AccountHandler, t *handler.TicketHandler, w *handler.WorkshopHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleAttendee))

	g.GET("/me", acc.Me)
	g.PATCH("/me", acc.Modify)
	g.DELETE("/me", acc.Delete)

	g.POST("/tickets/purchase", t.Purchase)
	g.POST("/tickets/upgrade", t.Upgrade)
	g.POST("/tickets/cancel", t.Cancel)

	g.POST("/reservations", w.Reserve)
}

// RegisterAdmin registers the back-office endpoints. Login is open;
// the reporting endpoints require the ADMIN role, which only the
// configured administrator credential can obtain.
func RegisterAdmin(e *echo.Echo, adm *handler.AdminHandler, jwtSecret string) {
	e.POST("/v1/admin/login", adm.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleAdmin))
	g.GET("/sales-reports", adm.SalesReports)
	g.GET("/workshops", adm.Workshops)
}
