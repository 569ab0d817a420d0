package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/Mim-rose/nexthire-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	jobsCollection          = "Jobs"
	applicationsCollection  = "job_applications"
	subscriptionsCollection = "subscriptions"
)

// searchFields are matched by SearchJobs, in this order.
var searchFields = []string{"title", "company", "category", "location", "description"}

// Mongo keeps the identifier in _id as an ObjectID; the shared models carry
// it as a hex string, so each collection gets a thin document wrapper.
type jobDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	models.Job `bson:",inline"`
}

func (d jobDocument) model() models.Job {
	job := d.Job
	job.ID = d.ID.Hex()
	return job
}

type applicationDocument struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	models.JobApplication `bson:",inline"`
}

func (d applicationDocument) model() models.JobApplication {
	app := d.JobApplication
	app.ID = d.ID.Hex()
	return app
}

type subscriptionDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	models.Subscription `bson:",inline"`
}

type MongoStore struct {
	client        *mongo.Client
	jobs          *mongo.Collection
	applications  *mongo.Collection
	subscriptions *mongo.Collection
}

// NewMongoStore connects with the stable v1 server API and pings the admin
// database before returning.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(false).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:        client,
		jobs:          db.Collection(jobsCollection),
		applications:  db.Collection(applicationsCollection),
		subscriptions: db.Collection(subscriptionsCollection),
	}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return fmt.Errorf("%w: mongo ping: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) ActiveJobs(ctx context.Context) ([]models.Job, error) {
	return s.findJobs(ctx, bson.M{"status": models.JobStatusActive}, nil)
}

func (s *MongoStore) DistinctJobValues(ctx context.Context, field JobField) ([]string, error) {
	raw, err := s.jobs.Distinct(ctx, string(field), bson.D{})
	if err != nil {
		return nil, mongoErr(fmt.Errorf("distinct %s: %w", field, err))
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			values = append(values, str)
		}
	}
	sort.Strings(values)
	return values, nil
}

func (s *MongoStore) SearchJobs(ctx context.Context, query string) ([]models.Job, error) {
	return s.findJobs(ctx, searchFilter(query), nil)
}

func (s *MongoStore) FeaturedJobs(ctx context.Context, limit int) ([]models.Job, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "isFeatured", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return s.findJobs(ctx, bson.M{}, opts)
}

func (s *MongoStore) ListJobs(ctx context.Context, skip, limit int) ([]models.Job, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	return s.findJobs(ctx, bson.M{}, opts)
}

func (s *MongoStore) JobByID(ctx context.Context, id string) (*models.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc jobDocument
	if err := s.jobs.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	job := doc.model()
	return &job, nil
}

func (s *MongoStore) JobsByPoster(ctx context.Context, email string) ([]models.Job, error) {
	return s.findJobs(ctx, bson.M{"postedBy": email}, nil)
}

func (s *MongoStore) JobsByCategory(ctx context.Context, category string) ([]models.Job, error) {
	return s.findJobs(ctx, bson.M{"category": category}, nil)
}

func (s *MongoStore) InsertJob(ctx context.Context, job *models.Job) (string, error) {
	res, err := s.jobs.InsertOne(ctx, jobDocument{Job: *job})
	if err != nil {
		return "", mongoErr(fmt.Errorf("insert job: %w", err))
	}
	job.ID = insertedHex(res)
	return job.ID, nil
}

// IncrementApplicationCount uses $inc, which treats a missing field as 0.
func (s *MongoStore) IncrementApplicationCount(ctx context.Context, id string) (*models.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc jobDocument
	err = s.jobs.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"applicationCount": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, mongoErr(err)
	}
	job := doc.model()
	return &job, nil
}

func (s *MongoStore) ApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error) {
	cursor, err := s.applications.Find(ctx, bson.M{"applicant_email": email})
	if err != nil {
		return nil, mongoErr(fmt.Errorf("find applications: %w", err))
	}
	var docs []applicationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(fmt.Errorf("decode applications: %w", err))
	}

	apps := make([]models.JobApplication, 0, len(docs))
	for _, d := range docs {
		apps = append(apps, d.model())
	}
	return apps, nil
}

func (s *MongoStore) InsertApplication(ctx context.Context, app *models.JobApplication) (string, error) {
	res, err := s.applications.InsertOne(ctx, applicationDocument{JobApplication: *app})
	if err != nil {
		return "", mongoErr(fmt.Errorf("insert application: %w", err))
	}
	app.ID = insertedHex(res)
	return app.ID, nil
}

func (s *MongoStore) DeleteApplication(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}
	res, err := s.applications.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, mongoErr(fmt.Errorf("delete application: %w", err))
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) InsertSubscription(ctx context.Context, sub *models.Subscription) (string, error) {
	res, err := s.subscriptions.InsertOne(ctx, subscriptionDocument{Subscription: *sub})
	if err != nil {
		return "", mongoErr(fmt.Errorf("insert subscription: %w", err))
	}
	sub.ID = insertedHex(res)
	return sub.ID, nil
}

func (s *MongoStore) findJobs(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Job, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cursor, err := s.jobs.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, mongoErr(fmt.Errorf("find jobs: %w", err))
	}
	var docs []jobDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(fmt.Errorf("decode jobs: %w", err))
	}

	jobs := make([]models.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.model())
	}
	return jobs, nil
}

// searchFilter builds an $or of case-insensitive regexes. The query is
// quoted so it always matches as a literal substring.
func searchFilter(query string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	or := make(bson.A, 0, len(searchFields))
	for _, field := range searchFields {
		or = append(or, bson.M{field: re})
	}
	return bson.M{"$or": or}
}

func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

func mongoErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case errors.Is(err, mongo.ErrClientDisconnected), mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return classifyContextErr(err)
}
