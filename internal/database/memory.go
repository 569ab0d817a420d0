package database

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Mim-rose/nexthire-server/internal/models"
	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. It backs STORE_DRIVER=memory for
// local runs and is the store used by the service and handler tests.
type MemoryStore struct {
	mu            sync.RWMutex
	closed        bool
	jobs          []models.Job
	applications  []models.JobApplication
	subscriptions []models.Subscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrUnavailable
	}
	return ctx.Err()
}

// Close marks the store unavailable; every later call fails with
// ErrUnavailable.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryStore) ActiveJobs(ctx context.Context) ([]models.Job, error) {
	return s.filterJobs(func(j models.Job) bool { return j.Status == models.JobStatusActive })
}

func (s *MemoryStore) DistinctJobValues(ctx context.Context, field JobField) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrUnavailable
	}

	seen := map[string]struct{}{}
	values := []string{}
	for _, j := range s.jobs {
		var v string
		switch field {
		case FieldCategory:
			v = j.Category
		case FieldLocation:
			v = j.Location
		}
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func (s *MemoryStore) SearchJobs(ctx context.Context, query string) ([]models.Job, error) {
	needle := strings.ToLower(query)
	return s.filterJobs(func(j models.Job) bool {
		for _, field := range []string{j.Title, j.Company, j.Category, j.Location, j.Description} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	})
}

func (s *MemoryStore) FeaturedJobs(ctx context.Context, limit int) ([]models.Job, error) {
	jobs, err := s.newestFirst()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].IsFeatured && !jobs[b].IsFeatured
	})
	return page(jobs, 0, limit), nil
}

func (s *MemoryStore) ListJobs(ctx context.Context, skip, limit int) ([]models.Job, error) {
	jobs, err := s.newestFirst()
	if err != nil {
		return nil, err
	}
	return page(jobs, skip, limit), nil
}

func (s *MemoryStore) JobByID(ctx context.Context, id string) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrUnavailable
	}
	for _, j := range s.jobs {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) JobsByPoster(ctx context.Context, email string) ([]models.Job, error) {
	return s.filterJobs(func(j models.Job) bool { return j.PostedBy == email })
}

func (s *MemoryStore) JobsByCategory(ctx context.Context, category string) ([]models.Job, error) {
	return s.filterJobs(func(j models.Job) bool { return j.Category == category })
}

func (s *MemoryStore) InsertJob(ctx context.Context, job *models.Job) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrUnavailable
	}
	job.ID = uuid.NewString()
	s.jobs = append(s.jobs, *job)
	return job.ID, nil
}

func (s *MemoryStore) IncrementApplicationCount(ctx context.Context, id string) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrUnavailable
	}
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i].ApplicationCount++
			job := s.jobs[i]
			return &job, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrUnavailable
	}
	apps := []models.JobApplication{}
	for _, a := range s.applications {
		if a.ApplicantEmail == email {
			apps = append(apps, a)
		}
	}
	return apps, nil
}

func (s *MemoryStore) InsertApplication(ctx context.Context, app *models.JobApplication) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrUnavailable
	}
	app.ID = uuid.NewString()
	s.applications = append(s.applications, *app)
	return app.ID, nil
}

func (s *MemoryStore) DeleteApplication(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrUnavailable
	}
	for i, a := range s.applications {
		if a.ID == id {
			s.applications = append(s.applications[:i], s.applications[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) InsertSubscription(ctx context.Context, sub *models.Subscription) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrUnavailable
	}
	sub.ID = uuid.NewString()
	s.subscriptions = append(s.subscriptions, *sub)
	return sub.ID, nil
}

// Subscriptions returns a copy of the stored subscriptions.
func (s *MemoryStore) Subscriptions() []models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Subscription(nil), s.subscriptions...)
}

func (s *MemoryStore) filterJobs(keep func(models.Job) bool) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrUnavailable
	}
	jobs := []models.Job{}
	for _, j := range s.jobs {
		if keep(j) {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// newestFirst sorts by createdAt descending; equal timestamps keep the most
// recently inserted job first.
func (s *MemoryStore) newestFirst() ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrUnavailable
	}
	jobs := make([]models.Job, 0, len(s.jobs))
	for i := len(s.jobs) - 1; i >= 0; i-- {
		jobs = append(jobs, s.jobs[i])
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
	})
	return jobs, nil
}

func page(jobs []models.Job, skip, limit int) []models.Job {
	if skip >= len(jobs) {
		return []models.Job{}
	}
	end := len(jobs)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return jobs[skip:end]
}
