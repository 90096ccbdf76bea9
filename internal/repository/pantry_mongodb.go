package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"pantrypal-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPantryRepository implements PantryRepository using MongoDB, for
// deployments backed by a hosted document store.
type MongoPantryRepository struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoPantryRepository creates a new MongoDB pantry repository.
func NewMongoPantryRepository(uri, database, collection string) (*MongoPantryRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	coll := db.Collection(collection)

	// Index for the per-user snapshot reads and the expiration purge.
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "expires_day", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("[MongoPantryRepository] Index creation warning: %v", err)
	}

	log.Printf("[MongoPantryRepository] Initialized with database=%s collection=%s", database, collection)
	return &MongoPantryRepository{client: client, db: db, collection: coll}, nil
}

// CreateItem stores a new pantry item.
func (r *MongoPantryRepository) CreateItem(ctx context.Context, item model.PantryItem) error {
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create pantry item: %w", err)
	}
	return nil
}

// GetItem retrieves one item by id, scoped to the user.
func (r *MongoPantryRepository) GetItem(ctx context.Context, userID, itemID string) (*model.PantryItem, error) {
	var item model.PantryItem
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "id": itemID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pantry item: %w", err)
	}
	return &item, nil
}

// ListItems retrieves a user's full pantry snapshot, soonest expiration first.
func (r *MongoPantryRepository) ListItems(ctx context.Context, userID string) ([]model.PantryItem, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "expires_day", Value: 1}, {Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []model.PantryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode pantry items: %w", err)
	}
	return items, nil
}

// UpdateItem replaces a stored item's mutable fields.
func (r *MongoPantryRepository) UpdateItem(ctx context.Context, item model.PantryItem) error {
	filter := bson.M{"user_id": item.UserID, "id": item.ID}
	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"category":    item.Category,
		"quantity":    item.Quantity,
		"unit":        item.Unit,
		"storage":     item.Storage,
		"notes":       item.Notes,
		"expiration":  item.Expiration,
		"expires_day": item.ExpiresDay,
		"updated_at":  item.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update pantry item: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteItem removes an item, scoped to the user.
func (r *MongoPantryRepository) DeleteItem(ctx context.Context, userID, itemID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "id": itemID})
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PurgeExpired deletes items whose expiration day is before the cutoff.
func (r *MongoPantryRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	cutoff := before.Format("2006-01-02")

	result, err := r.collection.DeleteMany(ctx, bson.M{"expires_day": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired items: %w", err)
	}
	if result.DeletedCount > 0 {
		log.Printf("[MongoPantryRepository] Purged %d long-expired pantry items (cutoff: %s)", result.DeletedCount, cutoff)
	}
	return result.DeletedCount, nil
}

// Stats returns statistics about the pantry database.
func (r *MongoPantryRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	count, err := r.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, err
	}
	stats["total_items"] = count

	var collStats bson.M
	if err := r.db.RunCommand(ctx, bson.D{{Key: "collStats", Value: r.collection.Name()}}).Decode(&collStats); err == nil {
		if size, ok := collStats["size"]; ok {
			stats["db_size_bytes"] = size
		}
	}

	return stats, nil
}

// Close disconnects the MongoDB client.
func (r *MongoPantryRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Ensure MongoPantryRepository implements PantryRepository
var _ PantryRepository = (*MongoPantryRepository)(nil)
