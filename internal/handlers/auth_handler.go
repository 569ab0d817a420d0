package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Tokens *auth.TokenIssuer
	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

func NewAuthHandler(tokens *auth.TokenIssuer, secure bool) *AuthHandler {
	return &AuthHandler{Tokens: tokens, Secure: secure}
}

// IssueToken is POST /jwt. The JSON object body becomes the claim set.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var claims map[string]any
	if err := c.ShouldBindJSON(&claims); err != nil || claims == nil {
		respondError(c, apperr.BadRequest("Request body must be a JSON object"))
		return
	}

	token, err := h.Tokens.Issue(claims)
	if err != nil {
		respondError(c, apperr.Internal("Failed to issue token", err))
		return
	}

	h.setCookie(c, token, int(h.Tokens.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// CheckAuth is GET /check-auth.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	token, err := c.Cookie(auth.CookieName)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	if _, err := h.Tokens.Verify(token); err != nil {
		slog.Debug("Rejected session token", "requestId", RequestIDFrom(c), "error", err)
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// Logout is POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.Secure, true)
}
