package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/service"
	ws "github.com/stemsi/roster-mahasiswa/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams roster snapshots to live viewers.
type WSHandler struct {
	rosterService *service.RosterService
	hub           *ws.Hub
	log           zerolog.Logger
	upgrader      websocket.Upgrader
	pongWait      time.Duration
	pingPeriod    time.Duration
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rosterService *service.RosterService, hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rosterService: rosterService,
		hub:           hub,
		log:           log.With().Str("component", "ws_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
		pongWait:      ws.DefaultPongWait,
		pingPeriod:    ws.DefaultPingPeriod,
	}
}

// SetKeepAlive overrides the ping cadence. pingPeriod must be shorter than pongWait.
func (h *WSHandler) SetKeepAlive(pongWait, pingPeriod time.Duration) {
	h.pongWait = pongWait
	h.pingPeriod = pingPeriod
}

// RosterStream godoc
// WS /ws/v1/roster/stream
// Sends the current roster on connect, then a new snapshot after every change.
func (h *WSHandler) RosterStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	stopPing := ws.KeepAlive(conn, h.pongWait, h.pingPeriod)
	defer stopPing()

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	if err := h.hub.Send(conn, ws.NewSnapshot("", h.rosterService.Snapshot())); err != nil {
		h.log.Warn().Err(err).Msg("Initial snapshot failed")
		return
	}

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("Unexpected close")
			} else {
				h.log.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			_ = h.hub.Send(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			_ = h.hub.Send(conn, ws.ErrorResponse{Event: ws.EventError, Error: "unknown action"})
		}
	}
}
