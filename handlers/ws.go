package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/budgetiq/budget-api/utils"
)

// WSHandler pushes dashboard refresh signals to connected clients. Sessions
// are tagged with the owning user so a mutation only wakes that user's
// dashboards.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive matters behind cloud proxies that kill idle connections.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("connected", id)
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("disconnected", id)
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeError("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request. Browsers cannot set an Authorization header
// on a websocket handshake, so the access token travels as a query parameter.
// The user ID is attached through the upgrade's session keys; concurrent
// handshakes must not share any mutable tagging state.
func (h *WSHandler) HandleWS(c *gin.Context) {
	token := c.Query("token")
	userID, err := utils.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	keys := map[string]interface{}{"user_id": userID}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		utils.SafeError("Failed to upgrade websocket: %v", err)
	}
}

// BroadcastRefresh tells the user's open dashboards to refetch analytics.
func (h *WSHandler) BroadcastRefresh(userID string) {
	msg := []byte(`{"type": "refresh"}`)

	err := h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get("user_id")
		return exists && id == userID
	})
	if err != nil {
		utils.SafeError("Error broadcasting refresh to user %s: %v", userID, err)
	}
}
