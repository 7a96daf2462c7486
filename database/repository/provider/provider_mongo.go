package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "providers"

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a ProviderRepository on db and ensures its indexes.
func NewMongoProviderRepo(db *mongo.Database) (ProviderRepository, error) {
	r := &MongoProviderRepo{coll: db.Collection(CollectionName)}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("provider for user %s: %w", provider.UserID, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("provider with id %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) SetApproved(ctx context.Context, id string, approved bool) (*models.Provider, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{"approved": approved, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var provider models.Provider
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("provider with id %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update approval for provider %s: %w", id, err)
	}
	return &provider, nil
}
