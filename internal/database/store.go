package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Mim-rose/nexthire-server/internal/config"
	"github.com/Mim-rose/nexthire-server/internal/models"
)

var (
	// ErrNotFound means the lookup matched no document.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID means the identifier is not valid for the backend.
	ErrInvalidID = errors.New("invalid document id")
	// ErrUnavailable means the store cannot be reached or is closed.
	ErrUnavailable = errors.New("store unavailable")
)

// JobField names a job attribute that can be listed with DistinctJobValues.
type JobField string

const (
	FieldCategory JobField = "category"
	FieldLocation JobField = "location"
)

type JobStore interface {
	// ActiveJobs returns jobs with status "active" in insertion order.
	ActiveJobs(ctx context.Context) ([]models.Job, error)
	// DistinctJobValues returns the sorted, non-empty values of field.
	DistinctJobValues(ctx context.Context, field JobField) ([]string, error)
	// SearchJobs matches query literally and case-insensitively against
	// title, company, category, location and description.
	SearchJobs(ctx context.Context, query string) ([]models.Job, error)
	// FeaturedJobs orders featured jobs first, then newest first.
	FeaturedJobs(ctx context.Context, limit int) ([]models.Job, error)
	// ListJobs returns a newest-first page.
	ListJobs(ctx context.Context, skip, limit int) ([]models.Job, error)
	JobByID(ctx context.Context, id string) (*models.Job, error)
	JobsByPoster(ctx context.Context, email string) ([]models.Job, error)
	JobsByCategory(ctx context.Context, category string) ([]models.Job, error)
	// InsertJob stores job, sets job.ID and returns it.
	InsertJob(ctx context.Context, job *models.Job) (string, error)
	// IncrementApplicationCount adds one to the job's applicationCount in a
	// single store operation and returns the updated job.
	IncrementApplicationCount(ctx context.Context, id string) (*models.Job, error)
}

type ApplicationStore interface {
	ApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error)
	InsertApplication(ctx context.Context, app *models.JobApplication) (string, error)
	DeleteApplication(ctx context.Context, id string) (int64, error)
}

type SubscriptionStore interface {
	InsertSubscription(ctx context.Context, sub *models.Subscription) (string, error)
}

// Store is the full document store. It is opened once at startup and shared
// by every service.
type Store interface {
	JobStore
	ApplicationStore
	SubscriptionStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connect opens the backend selected by cfg.StoreDriver and verifies it is
// reachable.
func Connect(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		store, err = NewMongoStore(ctx, cfg.MongoURI, cfg.DBName)
	case config.DriverPostgres:
		store, err = NewPostgresStore(ctx, cfg.PostgresDSN)
	case config.DriverMemory:
		store = NewMemoryStore()
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Database connection established", "driver", cfg.StoreDriver)
	return store, nil
}

func classifyContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
