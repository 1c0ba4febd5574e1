package main

import (
	"codeberg.org/actas/server/actas/authflow"
	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/api/rest/health"
	"codeberg.org/actas/server/internal/config"
	"codeberg.org/actas/server/internal/events"
	"codeberg.org/actas/server/internal/session"
	"codeberg.org/actas/server/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db     *storage.Client
	redis  *redis.Client
	config *config.Config
	router *gin.Engine
}

// everything the router needs; swapped for in-memory versions in tests
type Dependencies struct {
	Sessions     *session.Store
	Users        users.Store
	Exchanger    authflow.Exchanger
	Events       events.Emitter
	AuthLimit    gin.HandlerFunc
	HealthChecks map[string]health.Check
	CORSOrigins  []string
}
