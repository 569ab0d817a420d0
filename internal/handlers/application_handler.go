package handlers

import (
	"errors"
	"net/http"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/dtos"
	"github.com/Mim-rose/nexthire-server/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	MaxUploadBytes     int64
}

func NewApplicationHandler(s *services.ApplicationService, maxUploadBytes int64) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: s, MaxUploadBytes: maxUploadBytes}
}

// ForApplicant is GET /job-applications?email=
func (h *ApplicationHandler) ForApplicant(c *gin.Context) {
	var q dtos.EmailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, apperr.BadRequest("Missing email"))
		return
	}
	apps, err := h.ApplicationService.ForApplicant(c.Request.Context(), q.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Submit is the multipart POST /job-applications. The whole body is capped;
// of the uploaded files only the original names are kept.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		if c.Request.ContentLength > h.MaxUploadBytes {
			respondError(c, apperr.PayloadTooLarge("Upload exceeds the size limit"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	var sub dtos.ApplicationSubmission
	if err := c.ShouldBind(&sub); err != nil {
		respondError(c, bindError(err))
		return
	}

	var err error
	if sub.ResumeFilename, err = uploadedName(c, "resume"); err != nil {
		respondError(c, bindError(err))
		return
	}
	if sub.CoverLetterFilename, err = uploadedName(c, "coverLetter"); err != nil {
		respondError(c, bindError(err))
		return
	}

	res, err := h.ApplicationService.Submit(c.Request.Context(), sub)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete is DELETE /job-applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	n, err := h.ApplicationService.Delete(c.Request.Context(), c.Param("id"))
	if apperr.Is(err, apperr.CodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":        "Application not found",
			"code":         apperr.CodeNotFound,
			"deletedCount": 0,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.DeleteApplicationResponse{Success: true, DeletedCount: n})
}

// uploadedName returns the original filename of an optional upload field.
func uploadedName(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fh.Filename, nil
}
