package provider

import (
	"context"
	"math"
	"testing"

	"servicehub/database/repository/memory"
	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	applicant = models.Principal{UserID: "u1", Role: models.RoleUser}
	admin     = models.Principal{UserID: "admin", Role: models.RoleAdmin}
)

func newService(t *testing.T) (*DefaultProviderService, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc, err := NewDefaultProviderService(store.Providers(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return svc, store
}

func float(v float64) *float64 { return &v }

func validRequest() RequestInput {
	return RequestInput{
		BusinessName: "  Pipes & Co ",
		Categories:   []string{"Plumber", " ", "Plumber", "Fitter"},
		Address:      "12 Main St",
		Latitude:     float(19.0),
		Longitude:    float(73.0),
		VisitCharge:  float(100),
	}
}

func TestRequestCreatesUnapprovedProvider(t *testing.T) {
	svc, _ := newService(t)

	p, err := svc.Request(context.Background(), applicant, validRequest())
	require.NoError(t, err)
	assert.False(t, p.Approved)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Pipes & Co", p.BusinessName)
	assert.Equal(t, []string{"Plumber", "Fitter"}, p.Categories)
	assert.Equal(t, 19.0, p.Location.Lat())
	assert.Equal(t, 73.0, p.Location.Lng())
	assert.Zero(t, p.ReviewCount)
}

func TestRequestTwiceIsRejected(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Request(context.Background(), applicant, validRequest())
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), applicant, validRequest())
	assert.ErrorIs(t, err, models.ErrProviderAlreadyRequested)
}

func TestRequestValidation(t *testing.T) {
	svc, _ := newService(t)
	cases := []struct {
		name   string
		mutate func(in *RequestInput)
		want   error
		field  string
	}{
		{"short name", func(in *RequestInput) { in.BusinessName = " a " }, models.ErrInvalidProvider, "businessName"},
		{"no categories", func(in *RequestInput) { in.Categories = []string{"", " "} }, models.ErrInvalidProvider, "categories"},
		{"no address", func(in *RequestInput) { in.Address = "" }, models.ErrInvalidProvider, "address"},
		{"bad lat", func(in *RequestInput) { in.Latitude = float(-91) }, models.ErrInvalidCoordinates, "latitude"},
		{"bad lng", func(in *RequestInput) { in.Longitude = float(181) }, models.ErrInvalidCoordinates, "longitude"},
		{"missing lat", func(in *RequestInput) { in.Latitude = nil }, models.ErrInvalidCoordinates, "latitude"},
		{"missing lng", func(in *RequestInput) { in.Longitude = nil }, models.ErrInvalidCoordinates, "longitude"},
		{"missing charge", func(in *RequestInput) { in.VisitCharge = nil }, models.ErrInvalidProvider, "visitCharge"},
		{"negative charge", func(in *RequestInput) { in.VisitCharge = float(-5) }, models.ErrInvalidProvider, "visitCharge"},
		{"infinite charge", func(in *RequestInput) { in.VisitCharge = float(math.Inf(1)) }, models.ErrInvalidProvider, "visitCharge"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRequest()
			tc.mutate(&in)
			_, err := svc.Request(context.Background(), applicant, in)
			require.ErrorIs(t, err, tc.want)
			de, _ := models.AsDomainError(err)
			assert.Equal(t, tc.field, de.Field)
		})
	}
}

func TestApprovalFlow(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	p, err := svc.Request(ctx, applicant, validRequest())
	require.NoError(t, err)

	_, err = svc.ListPending(ctx, applicant)
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
	_, err = svc.SetApproval(ctx, applicant, p.ID, true)
	assert.ErrorIs(t, err, models.ErrNotAuthorized)

	pending, err := svc.ListPending(ctx, admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, p.ID, pending[0].ID)

	approved, err := svc.SetApproval(ctx, admin, p.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	stored, err := store.Providers().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Approved)

	pending, err = svc.ListPending(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.SetApproval(ctx, admin, "ghost", true)
	assert.ErrorIs(t, err, models.ErrProviderNotFound)
}
