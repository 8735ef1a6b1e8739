package changes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from any origin in allowedOrigins; an empty
// list falls back to gorilla's same-origin check.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	h := &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		}
	}
	return h
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/changes", h.Serve)
}

// Serve upgrades the request and streams change events as JSON text frames
// until the client goes away.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.hub.log.Debug().Err(err).Msg("change feed upgrade failed")
		return
	}

	cl := h.hub.register(conn)
	go h.hub.writePump(cl)
	h.hub.readPump(cl)
}
