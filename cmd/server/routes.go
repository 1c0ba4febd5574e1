package main

import (
	"codeberg.org/actas/server/actas/authflow"
	"codeberg.org/actas/server/actas/impersonation"
	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/api/rest/admin"
	"codeberg.org/actas/server/api/rest/auth"
	"codeberg.org/actas/server/api/rest/health"
	impersonationapi "codeberg.org/actas/server/api/rest/impersonation"
	"codeberg.org/actas/server/api/rest/pages"
	"codeberg.org/actas/server/internal/session"
	"github.com/gin-gonic/gin"
)

const loginPath = "/login"

// builds the router with every route and middleware
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.Default()
	RegisterRoutes(router, deps)
	return router
}

// sets up all routes and middleware
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(CORSMiddleware(deps.CORSOrigins))

	health.RegisterRoutes(router, deps.HealthChecks)

	reconciler := users.NewReconciler(deps.Users, deps.Events)
	orchestrator := authflow.New(deps.Exchanger, reconciler, deps.Events)
	gateway := impersonation.NewGateway(deps.Events)

	authLimit := deps.AuthLimit
	if authLimit == nil {
		authLimit = func(c *gin.Context) { c.Next() }
	}

	web := router.Group("")
	web.Use(session.Middleware(deps.Sessions), impersonation.Share())

	{
		auth.RegisterRoutes(web, orchestrator, authLimit)
		pages.RegisterRoutes(web, deps.Users, loginPath)
		impersonationapi.RegisterRoutes(web, gateway)
		admin.RegisterRoutes(web, deps.Users)
	}
}
