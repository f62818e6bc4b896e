package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"studiodesk/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	log     zerolog.Logger
}

func NewHandler(service *Service, hub *Hub, log zerolog.Logger) *Handler {
	return &Handler{service: service, hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.GetSummary)
	rg.GET("/dashboard/live", h.Live)
}

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard summary")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Live upgrades the request and keeps the connection registered until the
// client goes away. Writes happen from the hub; the read loop only exists
// to detect disconnects.
func (h *Handler) Live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := h.hub.Register(conn)
	h.log.Debug().Int64("conn_id", id).Msg("dashboard connection opened")

	defer func() {
		h.hub.Unregister(id)
		h.log.Debug().Int64("conn_id", id).Msg("dashboard connection closed")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
