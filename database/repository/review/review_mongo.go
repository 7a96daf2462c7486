package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/database"
	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "reviews"

// MongoReviewRepo implements ReviewRepository using MongoDB.
// Aggregate updates need a replica set for multi-document transactions.
type MongoReviewRepo struct {
	client       *mongo.Client
	reviewColl   *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository on db and ensures its indexes.
func NewMongoReviewRepo(db *mongo.Database) (ReviewRepository, error) {
	r := &MongoReviewRepo{
		client:       db.Client(),
		reviewColl:   db.Collection(CollectionName),
		providerColl: db.Collection(providerRepo.CollectionName),
	}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// at most one review per (provider, author)
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.reviewColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

// aggregatePipeline folds rating into ratingTotal/reviewCount and recomputes the mean
// in one single-document update.
func aggregatePipeline(rating int, at time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "ratingTotal", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$ratingTotal", 0}}}, rating,
			}}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviewCount", 0}}}, 1,
			}}}},
			{Key: "updatedAt", Value: at},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.D{{Key: "$divide", Value: bson.A{"$ratingTotal", "$reviewCount"}}}},
		}}},
	}
}

func (r *MongoReviewRepo) AddWithAggregate(ctx context.Context, review *models.Review) (*models.Provider, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated models.Provider
	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.reviewColl.InsertOne(sc, review); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("review by %s for provider %s: %w", review.UserID, review.ProviderID, database.ErrDuplicate)
			}
			return fmt.Errorf("insert review failed: %w", err)
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := r.providerColl.FindOneAndUpdate(sc, bson.M{"id": review.ProviderID},
			aggregatePipeline(review.Rating, review.CreatedAt), opts).Decode(&updated)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("provider with id %s: %w", review.ProviderID, database.ErrNotFound)
			}
			return fmt.Errorf("update provider aggregate failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("could not start transaction: %w", err)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(context.Background())
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoReviewRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}})
	cursor, err := r.reviewColl.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews for provider %s: %w", providerID, err)
	}
	return reviews, nil
}
