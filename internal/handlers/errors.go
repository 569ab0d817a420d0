package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/gin-gonic/gin"
)

// respondError renders err as {error, code} and aborts the chain. Server-side
// failures are logged with their cause; clients only see the message.
func respondError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"requestId", RequestIDFrom(c),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"code", appErr.Code,
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// bindError turns a gin binding failure into a client error, or 413 when the
// body hit the upload cap.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.PayloadTooLarge("Upload exceeds the size limit")
	}
	return &apperr.Error{Code: apperr.CodeBadRequest, Message: "Invalid request: " + err.Error(), Err: err}
}
