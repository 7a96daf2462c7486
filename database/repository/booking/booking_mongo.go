package bookingRepo

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

const CollectionName = "bookings"

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository on db and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) (BookingRepository, error) {
	r := &MongoBookingRepo{coll: db.Collection(CollectionName)}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("booking %s: %w", booking.ID, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking with id %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// transitionFilter matches the booking only while it is still in status from.
func transitionFilter(id string, from models.BookingStatus) bson.M {
	return bson.M{"id": id, "status": from}
}

// transitionUpdate is the $set document equivalent of change.Apply.
func transitionUpdate(change StatusChange) bson.M {
	set := bson.M{
		"status":    change.To,
		"updatedAt": change.At,
	}
	if change.VisitChargeTransactionID != "" {
		set["visitChargePaid"] = true
		set["visitChargeTransactionId"] = change.VisitChargeTransactionID
	}
	switch change.To {
	case models.BookingStatusCompleted:
		set["completedAt"] = change.At
	case models.BookingStatusCancelled:
		set["cancelledAt"] = change.At
	}
	return bson.M{"$set": set}
}

// Transition is a single conditional FindOneAndUpdate keyed on the expected prior status.
func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from models.BookingStatus, change StatusChange) (*models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, transitionFilter(id, from), transitionUpdate(change), opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to transition booking %s to %s: %w", id, change.To, err)
	}

	// Nothing matched: either the booking is gone or its status moved on.
	n, cerr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if cerr != nil {
		return nil, fmt.Errorf("failed to check booking %s: %w", id, cerr)
	}
	if n == 0 {
		return nil, fmt.Errorf("booking with id %s: %w", id, database.ErrNotFound)
	}
	return nil, fmt.Errorf("booking %s is no longer %s: %w", id, from, database.ErrStatusConflict)
}
