package handlers

import (
	"context"
	"net/http"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/dtos"
	"github.com/Mim-rose/nexthire-server/internal/services"
	"github.com/gin-gonic/gin"
)

const welcomeText = "🚀 Welcome to the NextHire API"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Home(c *gin.Context) {
	c.String(http.StatusOK, welcomeText)
}

// HealthCheck returns a handler that pings the store.
func HealthCheck(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			respondError(c, apperr.Unavailable("database not available", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

type SubscriptionHandler struct {
	SubscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(s *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{SubscriptionService: s}
}

// Subscribe is POST /api/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dtos.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if req.Email == "" {
			respondError(c, apperr.BadRequest("Email is required"))
		} else {
			respondError(c, apperr.BadRequest("Invalid email"))
		}
		return
	}
	if err := h.SubscriptionService.Subscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscribed successfully"})
}
