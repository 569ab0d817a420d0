package handlers

import (
	"io"
	"net/http"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/dtos"
	"github.com/Mim-rose/nexthire-server/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// Categories is GET /api/categories
func (h *JobHandler) Categories(c *gin.Context) {
	categories, err := h.JobService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Locations is GET /api/locations
func (h *JobHandler) Locations(c *gin.Context) {
	locations, err := h.JobService.Locations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// Search is GET /api/search?q=
func (h *JobHandler) Search(c *gin.Context) {
	var q dtos.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, apperr.BadRequest("Missing search query"))
		return
	}
	jobs, err := h.JobService.Search(c.Request.Context(), q.Q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Featured(c *gin.Context) {
	jobs, err := h.JobService.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// AllJobs is GET /jobs/all?page=&limit=
func (h *JobHandler) AllJobs(c *gin.Context) {
	var q dtos.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, apperr.BadRequest("page and limit must be positive integers (limit at most 100)"))
		return
	}
	jobs, err := h.JobService.Page(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) JobByID(c *gin.Context) {
	job, err := h.JobService.JobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /jobs. The raw body goes to the service so it can be
// checked against the job schema before binding.
func (h *JobHandler) CreateJob(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, bindError(err))
		return
	}
	id, err := h.JobService.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.JobCreationResponse{Acknowledged: true, InsertedID: id})
}

// JobsByPoster is GET /jobs?email=
func (h *JobHandler) JobsByPoster(c *gin.Context) {
	var q dtos.EmailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, apperr.BadRequest("Missing email"))
		return
	}
	jobs, err := h.JobService.ByPoster(c.Request.Context(), q.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) JobsByCategory(c *gin.Context) {
	jobs, err := h.JobService.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
