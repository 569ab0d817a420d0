package services

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/models"
)

// Randomizer supplies the synthetic company ratings. *rand.Rand satisfies it.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
}

// globalRand uses the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type CompanyService struct {
	Store database.JobStore
	Rand  Randomizer
}

func NewCompanyService(store database.JobStore) *CompanyService {
	return &CompanyService{
		Store: store,
		Rand:  globalRand{},
	}
}

// Companies rolls the active jobs up into one summary per company. It backs
// both /api/companies and /api/companies/all.
func (s *CompanyService) Companies(ctx context.Context) ([]models.CompanySummary, error) {
	jobs, err := s.Store.ActiveJobs(ctx)
	if err != nil {
		return nil, storeErr("Failed to fetch companies", err)
	}
	return AggregateCompanies(jobs, s.Rand), nil
}

// CompanyJobs returns the active jobs whose company equals name, ignoring
// case.
func (s *CompanyService) CompanyJobs(ctx context.Context, name string) ([]models.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.BadRequest("Missing company name")
	}
	jobs, err := s.Store.ActiveJobs(ctx)
	if err != nil {
		return nil, storeErr("Failed to fetch jobs for company", err)
	}

	matches := FilterByCompany(jobs, name)
	if len(matches) == 0 {
		return nil, apperr.NotFound("No jobs found for this company")
	}
	return matches, nil
}

// AggregateCompanies folds jobs into company summaries in first-occurrence
// order. Inactive jobs and jobs without a company name or logo are skipped;
// a job without a logo therefore never creates or counts toward a summary.
// Logo, location, rating and reviews come from the first job seen.
func AggregateCompanies(jobs []models.Job, r Randomizer) []models.CompanySummary {
	companies := []models.CompanySummary{}
	index := map[string]int{}

	for _, job := range jobs {
		if job.Status != models.JobStatusActive || job.Company == "" || job.CompanyLogo == "" {
			continue
		}
		if i, ok := index[job.Company]; ok {
			companies[i].JobCount++
			continue
		}
		index[job.Company] = len(companies)
		companies = append(companies, models.CompanySummary{
			Name:     job.Company,
			Logo:     job.CompanyLogo,
			Location: job.Location,
			JobCount: 1,
			Rating:   syntheticRating(r),
			Reviews:  syntheticReviews(r),
		})
	}
	return companies
}

// FilterByCompany keeps the active jobs whose company name equals name under
// Unicode case folding. It never matches substrings.
func FilterByCompany(jobs []models.Job, name string) []models.Job {
	name = strings.TrimSpace(name)
	matches := []models.Job{}
	for _, job := range jobs {
		if job.Status == models.JobStatusActive && strings.EqualFold(job.Company, name) {
			matches = append(matches, job)
		}
	}
	return matches
}

// syntheticRating is in [3.5, 5.0], rounded to one decimal.
func syntheticRating(r Randomizer) float64 {
	return math.Round((3.5+r.Float64()*1.5)*10) / 10
}

// syntheticReviews is in [20, 220).
func syntheticReviews(r Randomizer) int {
	return 20 + r.IntN(200)
}
