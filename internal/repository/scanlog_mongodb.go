package repository

import (
	"context"
	"fmt"
	"time"

	"pantrypal-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScanLogRepository implements ScanLogRepository for MongoDB.
type MongoScanLogRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoScanLogRepository creates a new MongoDB scan log repository.
func NewMongoScanLogRepository(uri, dbName, collectionName string) (*MongoScanLogRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	collection := client.Database(dbName).Collection(collectionName)

	return &MongoScanLogRepository{
		client:     client,
		collection: collection,
	}, nil
}

// InsertScanLog inserts a new AI activity record.
func (r *MongoScanLogRepository) InsertScanLog(ctx context.Context, entry *model.ScanLog) error {
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// GetScanLogs retrieves activity records with pagination, newest first.
func (r *MongoScanLogRepository) GetScanLogs(ctx context.Context, limit, offset int) ([]model.ScanLog, int64, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch scan logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []model.ScanLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode scan logs: %w", err)
	}

	total, err := r.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Close disconnects the MongoDB client.
func (r *MongoScanLogRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Ensure MongoScanLogRepository implements ScanLogRepository
var _ ScanLogRepository = (*MongoScanLogRepository)(nil)
