package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/LovationAdmin/giftfinder-api/middleware"
	"github.com/LovationAdmin/giftfinder-api/models"
	"github.com/LovationAdmin/giftfinder-api/utils"
)

const wsUserKey = "user_id"

// WSHandler is the live feed of completed searches, one channel per user.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 4 * 1024

	// Keep-alive pour les hébergeurs cloud
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(wsUserKey)
		utils.SafeDebug("[WS] Client connected for user %v", userID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(wsUserKey)
		utils.SafeDebug("[WS] Client disconnected for user %v", userID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("[WS] Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades an authenticated request.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
		return
	}

	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{wsUserKey: userID}); err != nil {
		utils.SafeWarn("[WS] Failed to upgrade websocket: %v", err)
	}
}

// NotifySearchCompleted sends evt to every session of userID.
func (h *WSHandler) NotifySearchCompleted(userID string, evt models.SearchEvent) {
	msg, err := json.Marshal(evt)
	if err != nil {
		utils.SafeWarn("[WS] Failed to encode event: %v", err)
		return
	}

	err = h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get(wsUserKey)
		return exists && id == userID
	})
	if err != nil {
		utils.SafeWarn("[WS] Error broadcasting to user %s: %v", utils.MaskID(userID), err)
	}
}

// Close disconnects every session.
func (h *WSHandler) Close() error {
	return h.M.Close()
}
