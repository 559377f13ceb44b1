package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/docs"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/dto"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/intent"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/service"
)

const requestIDHeader = "X-Request-ID"

// malformedMessage is returned instead of the parameter error itself
const malformedMessage = "Could not read the value in your question. Please check it and try again."

const internalMessage = "Something went wrong while answering. Please try again later."

type Handler struct {
	chatService service.ChatServicer
	router      *gin.Engine
	log         *zap.Logger
}

func NewHandler(chatService service.ChatServicer, log *zap.Logger) *Handler {
	h := &Handler{
		chatService: chatService,
		router:      gin.Default(),
		log:         log,
	}

	h.router.Use(requestID())
	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/chat", h.chat)
	h.router.GET("/intents", h.listIntents)
	h.router.GET("/ws", h.chatSocket)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// requestID tags every request with an id, reusing the caller's if present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running and the store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	if err := h.chatService.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// chat handles POST /chat
// @Summary Ask a question
// @Description Classify a question about customer transactions and answer it. Record lists come back as an HTML table.
// @Tags chat
// @Accept json
// @Produce json
// @Param question body dto.ChatRequest true "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *Handler) chat(c *gin.Context) {
	var req dto.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.chatService.Ask(c.Request.Context(), &req)
	if err != nil {
		status, body := h.errorResponse(c, err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, response)
}

// listIntents handles GET /intents
// @Summary List intents
// @Description List the routing rules in priority order. The first rule whose trigger occurs in a question answers it.
// @Tags chat
// @Produce json
// @Success 200 {object} dto.IntentsResponse
// @Router /intents [get]
func (h *Handler) listIntents(c *gin.Context) {
	c.JSON(http.StatusOK, h.chatService.Intents())
}

// errorResponse maps an Ask failure to a status and body
func (h *Handler) errorResponse(c *gin.Context, err error) (int, dto.ErrorResponse) {
	id := c.GetString(requestIDHeader)

	if errors.Is(err, intent.ErrMalformedParameter) {
		h.log.Info("Malformed parameter",
			zap.Error(err),
			zap.String("request_id", id))
		return http.StatusBadRequest, dto.ErrorResponse{
			Error:   "malformed_parameter",
			Message: malformedMessage,
		}
	}

	h.log.Error("Failed to answer question",
		zap.Error(err),
		zap.String("request_id", id))
	return http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: internalMessage,
	}
}
