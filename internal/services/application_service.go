package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/dtos"
	"github.com/Mim-rose/nexthire-server/internal/models"
	"golang.org/x/sync/errgroup"
)

// defaultLookupLimit bounds concurrent job lookups per enrichment.
const defaultLookupLimit = 8

type ApplicationService struct {
	Jobs         database.JobStore
	Applications database.ApplicationStore
	LookupLimit  int
}

func NewApplicationService(jobs database.JobStore, apps database.ApplicationStore) *ApplicationService {
	return &ApplicationService{
		Jobs:         jobs,
		Applications: apps,
		LookupLimit:  defaultLookupLimit,
	}
}

// ForApplicant returns the applicant's applications, each joined with the job
// it references. Output order and length always match the stored
// applications. A reference to a missing or malformed job id leaves that
// record unenriched; any other lookup failure fails the whole call.
func (s *ApplicationService) ForApplicant(ctx context.Context, email string) ([]models.EnrichedApplication, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.BadRequest("Missing email")
	}

	apps, err := s.Applications.ApplicationsByApplicant(ctx, email)
	if err != nil {
		return nil, storeErr("Failed to load applications", err)
	}

	results := make([]models.EnrichedApplication, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	if s.LookupLimit > 0 {
		g.SetLimit(s.LookupLimit)
	}
	for i, app := range apps {
		g.Go(func() error {
			job, err := s.Jobs.JobByID(gctx, app.JobID)
			switch {
			case err == nil:
				results[i] = Enrich(app, job)
			case errors.Is(err, database.ErrNotFound), errors.Is(err, database.ErrInvalidID):
				slog.Warn("Application references unknown job", "applicationId", app.ID, "jobId", app.JobID, "error", err)
				results[i] = Enrich(app, nil)
			default:
				return fmt.Errorf("lookup job %s: %w", app.JobID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeErr("Failed to load applications", err)
	}
	return results, nil
}

// Enrich copies the display fields of job onto a view of app. A nil job
// yields the bare application.
func Enrich(app models.JobApplication, job *models.Job) models.EnrichedApplication {
	out := models.EnrichedApplication{JobApplication: app}
	if job == nil {
		return out
	}
	j := *job
	out.Job = &j
	out.Title = j.Title
	out.Location = j.Location
	out.Company = j.Company
	out.CompanyLogo = j.CompanyLogo
	out.JobType = j.JobType
	out.Category = j.Category
	out.SalaryRange = j.SalaryRange
	return out
}

// Submit stores an application and bumps the job's applicationCount. The job
// must exist before anything is written.
func (s *ApplicationService) Submit(ctx context.Context, sub dtos.ApplicationSubmission) (*dtos.ApplicationSubmissionResponse, error) {
	jobID := strings.TrimSpace(sub.JobID)
	logCtx := slog.With("jobId", jobID, "applicant", sub.ApplicantEmail)

	// 1. Resolve the target job
	job, err := s.Jobs.JobByID(ctx, jobID)
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return nil, apperr.BadRequest("Invalid job_id")
	case errors.Is(err, database.ErrNotFound):
		return nil, apperr.NotFound("Job not found")
	case err != nil:
		return nil, storeErr("Failed to process application", err)
	}

	// 2. Insert the application
	app := &models.JobApplication{
		JobID:             job.ID,
		ApplicantEmail:    strings.TrimSpace(sub.ApplicantEmail),
		ApplicantName:     sub.ApplicantName,
		ApplicantPhone:    sub.ApplicantPhone,
		ApplicantLinkedIn: sub.ApplicantLinkedIn,
		ApplicantNotes:    sub.ApplicantNotes,
		Resume:            optionalName(sub.ResumeFilename),
		CoverLetter:       optionalName(sub.CoverLetterFilename),
	}
	insertedID, err := s.Applications.InsertApplication(ctx, app)
	if err != nil {
		logCtx.Error("Failed to insert application", "error", err)
		return nil, storeErr("Failed to process application", err)
	}

	// 3. Atomic counter bump
	updated, err := s.Jobs.IncrementApplicationCount(ctx, job.ID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		logCtx.Warn("Job disappeared before counter update", "applicationId", insertedID)
		return nil, apperr.NotFound("Job not found")
	case err != nil:
		logCtx.Error("Failed to increment application count", "applicationId", insertedID, "error", err)
		return nil, storeErr("Failed to process application", err)
	}

	logCtx.Info("Application submitted", "applicationId", insertedID, "applicationCount", updated.ApplicationCount)
	return &dtos.ApplicationSubmissionResponse{
		InsertedID: insertedID,
		JobDetails: updated,
	}, nil
}

// Delete removes an application. A missing application is NotFound, so a
// repeated delete reports 404.
func (s *ApplicationService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.Applications.DeleteApplication(ctx, id)
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return 0, apperr.BadRequest("Invalid application id")
	case err != nil:
		return 0, storeErr("Failed to delete application", err)
	case n == 0:
		return 0, apperr.NotFound("Application not found")
	}
	slog.Info("Application deleted", "applicationId", id)
	return n, nil
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}
