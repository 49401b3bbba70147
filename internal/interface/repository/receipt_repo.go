package repository

import (
	"context"
	"time"

	"traveldesk-service/internal/domain/entity"
	"traveldesk-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReceiptRepository implements the ReceiptRepository interface
type MongoReceiptRepository struct {
	collection *mongo.Collection
}

// NewMongoReceiptRepository creates a new MongoDB receipt repository
func NewMongoReceiptRepository(db *mongo.Database) repository.ReceiptRepository {
	collection := db.Collection("communicationLogs")

	// Create indexes for better performance
	ctx := context.Background()

	tripIndex := mongo.IndexModel{
		Keys: bson.M{"tripId": 1},
	}

	// Index on createdAt for sorting delivery history
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	// Compound index for per-trip history queries
	tripHistoryIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "tripId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		tripIndex,
		createdAtIndex,
		tripHistoryIndex,
	})

	return &MongoReceiptRepository{
		collection: collection,
	}
}

// Create appends one receipt. Receipts are immutable; there is no update
// or delete path.
func (r *MongoReceiptRepository) Create(ctx context.Context, receipt *entity.CommunicationReceipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.NewString()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, receipt)
	return err
}

// FindByTrip returns a trip's delivery history, newest first.
func (r *MongoReceiptRepository) FindByTrip(ctx context.Context, tripID uint, limit int) ([]*entity.CommunicationReceipt, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"tripId": tripID}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []*entity.CommunicationReceipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
