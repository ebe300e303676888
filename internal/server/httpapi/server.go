// Package httpapi exposes the room server over HTTP: a small JSON API for
// creating and joining rooms, and the websocket endpoint that carries the
// realtime event channel.
package httpapi

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/config"
	"github.com/talkroom/talkroom/internal/server"
	"github.com/talkroom/talkroom/internal/server/store"
	"github.com/talkroom/talkroom/internal/server/ticket"
)

// NewServer builds the HTTP server with all routes registered.
func NewServer(hub *server.Hub, st store.Store, ticketCfg *ticket.Config, cfg config.ServerConfig, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := NewAPIHandlers(st, ticketCfg, logger)
	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.POST("/api/rooms", api.CreateRoom)
	router.POST("/api/rooms/join", api.JoinRoom)

	ws := NewWSHandler(hub, st, ticketCfg, logger)
	router.GET("/ws", gin.WrapH(ws))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
