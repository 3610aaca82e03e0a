package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"hero-chess/internal/api/ws"
	"hero-chess/internal/config"
)

func NewRouter(wsHandler *ws.Handler, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket endpoint; the room id is part of the path
	r.GET("/ws/:game_id", wsHandler.ServeWS)

	r.GET("/health", HealthHandler)

	// Client page and assets
	r.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	r.Static("/static", cfg.StaticDir)

	return r
}
