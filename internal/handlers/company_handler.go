package handlers

import (
	"net/http"

	"github.com/Mim-rose/nexthire-server/internal/services"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{CompanyService: s}
}

// Companies serves both /api/companies and /api/companies/all.
func (h *CompanyHandler) Companies(c *gin.Context) {
	companies, err := h.CompanyService.Companies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) CompanyJobs(c *gin.Context) {
	jobs, err := h.CompanyService.CompanyJobs(c.Request.Context(), c.Param("companyName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
