package providerRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindNear relies on $near for nearest-first ordering; a sort stage would override it.
func (r *MongoProviderRepo) FindNear(ctx context.Context, q NearQuery) ([]models.Provider, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    models.NewGeoPoint(q.Lat, q.Lng),
				"$maxDistance": q.MaxDistanceMeters,
			},
		},
	}
	if q.ApprovedOnly {
		filter["approved"] = true
	}
	if q.Category != "" {
		filter["categories"] = q.Category
	}
	if q.Text != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Text), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"businessName": re},
			bson.M{"categories": re},
			bson.M{"details": re},
			bson.M{"address": re},
		}
	}

	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers near (%f, %f): %w", q.Lat, q.Lng, err)
	}
	return decodeProviders(ctx, cursor)
}

func (r *MongoProviderRepo) ListByApproval(ctx context.Context, approved bool) ([]models.Provider, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"approved": approved}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers (approved=%t): %w", approved, err)
	}
	return decodeProviders(ctx, cursor)
}

func decodeProviders(ctx context.Context, cursor *mongo.Cursor) ([]models.Provider, error) {
	defer cursor.Close(ctx)
	providers := []models.Provider{}
	for cursor.Next(ctx) {
		var p models.Provider
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("provider cursor error: %w", err)
	}
	return providers, nil
}
