package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/dtos"
	"github.com/Mim-rose/nexthire-server/internal/models"
	"github.com/Mim-rose/nexthire-server/internal/validation"
)

// FeaturedLimit is the size of the featured jobs list.
const FeaturedLimit = 15

type JobService struct {
	Store database.JobStore
	now   func() time.Time
}

func NewJobService(store database.JobStore) *JobService {
	return &JobService{
		Store: store,
		now:   time.Now,
	}
}

func (s *JobService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.Store.DistinctJobValues(ctx, database.FieldCategory)
	if err != nil {
		return nil, storeErr("Could not fetch categories", err)
	}
	return categories, nil
}

func (s *JobService) Locations(ctx context.Context) ([]string, error) {
	locations, err := s.Store.DistinctJobValues(ctx, database.FieldLocation)
	if err != nil {
		return nil, storeErr("Could not fetch locations", err)
	}
	return locations, nil
}

// Search returns every job where one of the searchable fields contains q,
// ignoring case. q is matched literally.
func (s *JobService) Search(ctx context.Context, q string) ([]models.Job, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.BadRequest("Missing search query")
	}
	jobs, err := s.Store.SearchJobs(ctx, q)
	if err != nil {
		return nil, storeErr("Search failed", err)
	}
	return jobs, nil
}

func (s *JobService) Featured(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.Store.FeaturedJobs(ctx, FeaturedLimit)
	if err != nil {
		return nil, storeErr("Could not fetch jobs", err)
	}
	return jobs, nil
}

// Page returns the page-th newest-first slice of size limit (page is 1-based).
func (s *JobService) Page(ctx context.Context, page, limit int) ([]models.Job, error) {
	if page < 1 || limit < 1 {
		return nil, apperr.BadRequest("page and limit must be positive integers")
	}
	jobs, err := s.Store.ListJobs(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, storeErr("Could not fetch jobs", err)
	}
	return jobs, nil
}

func (s *JobService) JobByID(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.Store.JobByID(ctx, id)
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return nil, apperr.BadRequest("Invalid job id")
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("Job not found")
	case err != nil:
		return nil, storeErr("Could not fetch job", err)
	}
	return job, nil
}

// Create validates the raw posting, stamps createdAt and stores it. The
// application counter always starts at zero.
func (s *JobService) Create(ctx context.Context, body []byte) (string, error) {
	if err := validation.ValidateJob(body); err != nil {
		return "", &apperr.Error{Code: apperr.CodeBadRequest, Message: err.Error()}
	}
	var req dtos.JobCreationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", &apperr.Error{Code: apperr.CodeBadRequest, Message: "Invalid JSON format", Err: err}
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusActive
	}
	job := &models.Job{
		Title:       req.Title,
		Company:     req.Company,
		CompanyLogo: req.CompanyLogo,
		Location:    req.Location,
		Category:    req.Category,
		Description: req.Description,
		JobType:     req.JobType,
		SalaryRange: req.SalaryRange,
		PostedBy:    req.PostedBy,
		Status:      status,
		IsFeatured:  req.IsFeatured,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.Store.InsertJob(ctx, job)
	if err != nil {
		return "", storeErr("Failed to create job", err)
	}
	slog.Info("Job created", "jobId", id, "company", job.Company, "postedBy", job.PostedBy)
	return id, nil
}

func (s *JobService) ByPoster(ctx context.Context, email string) ([]models.Job, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.BadRequest("Missing email")
	}
	jobs, err := s.Store.JobsByPoster(ctx, email)
	if err != nil {
		return nil, storeErr("Failed to fetch jobs", err)
	}
	return jobs, nil
}

func (s *JobService) ByCategory(ctx context.Context, category string) ([]models.Job, error) {
	jobs, err := s.Store.JobsByCategory(ctx, category)
	if err != nil {
		return nil, storeErr("Could not fetch category jobs", err)
	}
	return jobs, nil
}
