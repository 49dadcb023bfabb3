package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

const (
	measurementsCollection = "measurements"
	runsCollection         = "runs"
)

// Repository defines the benchmark result storage operations.
type Repository interface {
	Append(ctx context.Context, measurements []models.Measurement) error
	SaveRunSummary(ctx context.Context, summary models.RunSummary) error
	LatestRun(ctx context.Context) (*models.RunSummary, error)
}

var _ Repository = (*MongoDBRepository)(nil)

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to uri and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// Append stores the measurements of one dataset size.
func (r *MongoDBRepository) Append(ctx context.Context, measurements []models.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(measurements))
	for _, m := range measurements {
		docs = append(docs, m)
	}

	collection := r.client.Database(r.dbName).Collection(measurementsCollection)
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert measurements: %w", err)
	}
	return nil
}

// SaveRunSummary stores the summary of a finished run.
func (r *MongoDBRepository) SaveRunSummary(ctx context.Context, summary models.RunSummary) error {
	collection := r.client.Database(r.dbName).Collection(runsCollection)
	if _, err := collection.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("failed to insert run summary: %w", err)
	}
	return nil
}

// LatestRun returns the most recently finished run, or nil when none is stored.
func (r *MongoDBRepository) LatestRun(ctx context.Context) (*models.RunSummary, error) {
	collection := r.client.Database(r.dbName).Collection(runsCollection)
	opts := options.FindOne().SetSort(bson.D{{Key: "finished_at", Value: -1}})

	var summary models.RunSummary
	err := collection.FindOne(ctx, bson.D{}, opts).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run summary: %w", err)
	}
	return &summary, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
