package bookingRepo

import (
	"context"
	"testing"
	"time"

	"servicehub/database"
	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var transitionAt = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func pendingBooking() *models.Booking {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:         "B1",
		UserID:     "U",
		ProviderID: "P",
		Category:   "Plumber",
		Timeslot:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		Address:    "1 Main St",
		Status:     models.BookingStatusPending,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// applySet runs a $set update against b's stored form the way the server would.
func applySet(t *testing.T, b *models.Booking, update bson.M) *models.Booking {
	t.Helper()
	raw, err := bson.Marshal(b)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	require.Len(t, update, 1)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok, "update must be a single $set")
	for k, v := range set {
		doc[k] = v
	}

	raw, err = bson.Marshal(doc)
	require.NoError(t, err)
	var out models.Booking
	require.NoError(t, bson.Unmarshal(raw, &out))
	return &out
}

func TestTransitionUpdateMatchesApply(t *testing.T) {
	cases := map[string]StatusChange{
		"confirm":  {To: models.BookingStatusConfirmed, At: transitionAt, VisitChargeTransactionID: "txn_1"},
		"complete": {To: models.BookingStatusCompleted, At: transitionAt},
		"cancel":   {To: models.BookingStatusCancelled, At: transitionAt},
	}
	for name, change := range cases {
		t.Run(name, func(t *testing.T) {
			want := pendingBooking()
			change.Apply(want)

			got := applySet(t, pendingBooking(), transitionUpdate(change))

			assert.Equal(t, want.Status, got.Status)
			assert.Equal(t, want.VisitChargePaid, got.VisitChargePaid)
			assert.Equal(t, want.VisitChargeTransactionID, got.VisitChargeTransactionID)
			assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
			assert.Equal(t, want.CompletedAt != nil, got.CompletedAt != nil)
			assert.Equal(t, want.CancelledAt != nil, got.CancelledAt != nil)
			if want.CompletedAt != nil {
				assert.True(t, want.CompletedAt.Equal(*got.CompletedAt))
			}
			if want.CancelledAt != nil {
				assert.True(t, want.CancelledAt.Equal(*got.CancelledAt))
			}
			assert.Equal(t, "B1", got.ID)
			assert.Equal(t, "U", got.UserID)
		})
	}
}

func TestTransitionFilterKeysOnPriorStatus(t *testing.T) {
	f := transitionFilter("B1", models.BookingStatusPending)
	assert.Equal(t, bson.M{"id": "B1", "status": models.BookingStatusPending}, f)
}

func storedDoc(t *testing.T, b *models.Booking) bson.D {
	t.Helper()
	raw, err := bson.Marshal(b)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestMongoTransition(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	change := StatusChange{To: models.BookingStatusConfirmed, At: transitionAt, VisitChargeTransactionID: "txn_1"}

	mt.Run("applies when status matches", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		confirmed := pendingBooking()
		change.Apply(confirmed)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: storedDoc(mt.T, confirmed)}))

		got, err := repo.Transition(context.Background(), "B1", models.BookingStatusPending, change)
		require.NoError(mt, err)
		assert.Equal(mt, models.BookingStatusConfirmed, got.Status)
		assert.Equal(mt, "txn_1", got.VisitChargeTransactionID)
		assert.True(mt, got.VisitChargePaid)
	})

	mt.Run("conflict when status moved on", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		_, err := repo.Transition(context.Background(), "B1", models.BookingStatusPending, change)
		assert.ErrorIs(mt, err, database.ErrStatusConflict)
	})

	mt.Run("not found when booking is gone", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		_, err := repo.Transition(context.Background(), "B1", models.BookingStatusPending, change)
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})
}
