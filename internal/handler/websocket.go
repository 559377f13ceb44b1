package handler

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// socket serializes writes; the read loop and the pinger share one connection
type socket struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *socket) writeJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

func (s *socket) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// chatSocket handles GET /ws
// @Summary Chat over WebSocket
// @Description Each text frame is a question; each reply is a JSON ChatResponse or ErrorResponse.
// @Tags chat
// @Success 101
// @Router /ws [get]
func (h *Handler) chatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ws := &socket{conn: conn}
	id := c.GetString(requestIDHeader)
	h.log.Info("WebSocket connected", zap.String("request_id", id))

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(ws, done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("WebSocket closed unexpectedly", zap.Error(err))
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		if err := ws.writeJSON(h.answer(c, string(data))); err != nil {
			h.log.Warn("Failed to write WebSocket reply", zap.Error(err))
			break
		}
	}

	h.log.Info("WebSocket disconnected", zap.String("request_id", id))
}

func (h *Handler) answer(c *gin.Context, message string) interface{} {
	message = strings.TrimSpace(message)
	if message == "" {
		return dto.ErrorResponse{Error: "validation_error", Message: "message is required"}
	}

	response, err := h.chatService.Ask(c.Request.Context(), &dto.ChatRequest{Message: message})
	if err != nil {
		_, body := h.errorResponse(c, err)
		return body
	}
	return response
}

func (h *Handler) keepAlive(ws *socket, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ws.ping(); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				h.log.Debug("WebSocket ping failed", zap.Error(err))
				return
			}
		}
	}
}
