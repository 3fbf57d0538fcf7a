// Package web exposes the parameter engine as an HTTP + websocket control
// surface. The panel UI reads the bound control state over /api/params,
// sends edits as POSTs, and subscribes to /ws/params for hardware-sourced
// updates pushed after every pull cycle that changed anything.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/engine"
	"github.com/inspectra/go-scopecam/pkg/hub"
)

// Server is the control-surface server bound to one engine.
type Server struct {
	app  *fiber.App
	port string

	eng      *engine.Engine
	stateHub *hub.Hub
}

// NewServer creates the control-surface server and installs the engine's
// update hook so every state change fans out to connected clients.
func NewServer(port string, eng *engine.Engine) *Server {
	s := &Server{
		port:     port,
		eng:      eng,
		stateHub: hub.New("params"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "scopecam",
		DisableStartupMessage: true,
	})

	// CORS for panels served from a dev host
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/params", s.handleGetParams)
	api.Post("/params/:name", s.handleSetParam)
	api.Post("/reset", s.handleReset)
	api.Post("/pull", s.handlePull)
	api.Post("/mode", s.handleSetMode)
	api.Post("/exposure/cycle", s.handleCycleExposure)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/params", websocket.New(s.handleParamsWS))

	s.app = app

	eng.SetOnUpdate(func(snap engine.Snapshot) {
		data, err := encodeStateEvent(snap)
		if err != nil {
			log.Error("encoding state event", "error", err)
			return
		}
		s.stateHub.Broadcast(data)
	})

	return s
}

// Start runs the hub loop and serves until Stop is called.
func (s *Server) Start() error {
	go s.stateHub.Run()
	log.Info("control surface listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop() error {
	return s.app.Shutdown()
}

// handleParamsWS registers the connection with the state hub. The current
// snapshot is sent immediately so a fresh panel renders without waiting
// for the next change.
func (s *Server) handleParamsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)
	if data, err := encodeStateEvent(s.eng.Snapshot()); err == nil {
		client.Send(data)
	}
	client.Run()
}
