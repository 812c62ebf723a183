package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ferdyn/votacion/internal/relay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware gates the browser side already.
	},
}

// RelayHandler upgrades viewers to a websocket and streams them the
// mutation events published on the hub, replacing client-side polling.
type RelayHandler struct {
	hub *relay.Hub
}

func NewRelayHandler(hub *relay.Hub) *RelayHandler {
	return &RelayHandler{
		hub: hub,
	}
}

// HandleEventos godoc
// @Summary      Subscribe to mutation events
// @Description  Upgrades to a WebSocket and streams table-change events. The optional tablas query parameter is a comma-separated filter; without it, every event is delivered.
// @Tags         eventos
// @Produce      json
// @Param        tablas  query     string  false  "Comma-separated table names to subscribe to"
// @Success      101     {string}  string  "Switching Protocols to WebSocket"
// @Failure      500     {object}  response.Err
// @Router       /eventos [get]
func (h *RelayHandler) HandleEventos(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	var tablas []string
	if raw := ctx.Query("tablas"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tablas = append(tablas, t)
			}
		}
	}

	sub := h.hub.Subscribe(tablas...)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump forwards hub events to the connection until the subscriber
// channel closes.
func (h *RelayHandler) writePump(conn *websocket.Conn, sub *relay.Subscriber) {
	defer conn.Close()

	for event := range sub.C {
		if err := conn.WriteJSON(event); err != nil {
			h.hub.Unsubscribe(sub)
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection; viewers never send anything
// meaningful, but reading is what detects the close.
func (h *RelayHandler) readPump(conn *websocket.Conn, sub *relay.Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}
