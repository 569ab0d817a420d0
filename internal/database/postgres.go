package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mim-rose/nexthire-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// PostgresStore keeps the same collections as tables, using uuid primary
// keys in place of ObjectIDs.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to postgres: %v", ErrUnavailable, err)
	}

	// Migration: creates the tables on first start
	if err := db.WithContext(ctx).AutoMigrate(&models.Job{}, &models.JobApplication{}, &models.Subscription{}); err != nil {
		return nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: postgres ping: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) ActiveJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Where("status = ?", models.JobStatusActive).
		Order("created_at ASC, id ASC").
		Find(&jobs).Error
	return jobs, pgErr(err)
}

func (s *PostgresStore) DistinctJobValues(ctx context.Context, field JobField) ([]string, error) {
	column, err := jobColumn(field)
	if err != nil {
		return nil, err
	}
	values := []string{}
	err = s.db.WithContext(ctx).
		Model(&models.Job{}).
		Where(column + " <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	return values, pgErr(err)
}

func (s *PostgresStore) SearchJobs(ctx context.Context, query string) ([]models.Job, error) {
	var jobs []models.Job
	cond, args := searchCondition(query)
	err := s.db.WithContext(ctx).
		Where(cond, args...).
		Order("created_at ASC, id ASC").
		Find(&jobs).Error
	return jobs, pgErr(err)
}

func (s *PostgresStore) FeaturedJobs(ctx context.Context, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Order("is_featured DESC, created_at DESC, id DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, pgErr(err)
}

func (s *PostgresStore) ListJobs(ctx context.Context, skip, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&jobs).Error
	return jobs, pgErr(err)
}

func (s *PostgresStore) JobByID(ctx context.Context, id string) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, pgErr(err)
	}
	return &job, nil
}

func (s *PostgresStore) JobsByPoster(ctx context.Context, email string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).Where("posted_by = ?", email).Order("created_at ASC, id ASC").Find(&jobs).Error
	return jobs, pgErr(err)
}

func (s *PostgresStore) JobsByCategory(ctx context.Context, category string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).Where("category = ?", category).Order("created_at ASC, id ASC").Find(&jobs).Error
	return jobs, pgErr(err)
}

func (s *PostgresStore) InsertJob(ctx context.Context, job *models.Job) (string, error) {
	job.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return "", pgErr(fmt.Errorf("insert job: %w", err))
	}
	return job.ID, nil
}

// IncrementApplicationCount issues one UPDATE ... RETURNING so concurrent
// submissions never lose an increment.
func (s *PostgresStore) IncrementApplicationCount(ctx context.Context, id string) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	var job models.Job
	res := s.db.WithContext(ctx).
		Model(&job).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("application_count", gorm.Expr("application_count + ?", 1))
	if res.Error != nil {
		return nil, pgErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (s *PostgresStore) ApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error) {
	apps := []models.JobApplication{}
	err := s.db.WithContext(ctx).Where("applicant_email = ?", email).Find(&apps).Error
	return apps, pgErr(err)
}

func (s *PostgresStore) InsertApplication(ctx context.Context, app *models.JobApplication) (string, error) {
	app.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return "", pgErr(fmt.Errorf("insert application: %w", err))
	}
	return app.ID, nil
}

func (s *PostgresStore) DeleteApplication(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, ErrInvalidID
	}
	res := s.db.WithContext(ctx).Delete(&models.JobApplication{}, "id = ?", id)
	if res.Error != nil {
		return 0, pgErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *PostgresStore) InsertSubscription(ctx context.Context, sub *models.Subscription) (string, error) {
	sub.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return "", pgErr(fmt.Errorf("insert subscription: %w", err))
	}
	return sub.ID, nil
}

func jobColumn(field JobField) (string, error) {
	switch field {
	case FieldCategory:
		return "category", nil
	case FieldLocation:
		return "location", nil
	}
	return "", fmt.Errorf("unsupported job field %q", field)
}

// searchCondition ILIKEs the escaped query against every search field.
func searchCondition(query string) (string, []any) {
	pattern := "%" + escapeLike(query) + "%"
	conds := make([]string, 0, len(searchFields))
	args := make([]any, 0, len(searchFields))
	for _, field := range searchFields {
		conds = append(conds, field+" ILIKE ?")
		args = append(args, pattern)
	}
	return strings.Join(conds, " OR "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func pgErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return classifyContextErr(err)
}
