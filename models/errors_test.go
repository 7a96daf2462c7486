package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorIsMatchesOnCode(t *testing.T) {
	err := ErrInvalidStateForPayment.WithState(BookingStatusConfirmed)

	assert.True(t, errors.Is(err, ErrInvalidStateForPayment))
	assert.False(t, errors.Is(err, ErrInvalidStateForCompletion))
	assert.Equal(t, BookingStatusConfirmed, err.State)
	assert.Empty(t, ErrInvalidStateForPayment.State, "sentinel must not be mutated")
}

func TestDomainErrorWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("listing bookings: %w", ErrStoreUnavailable.Wrap(cause))

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstream, de.Kind)
	assert.Contains(t, de.Error(), "connection refused")
}

func TestDomainErrorWithField(t *testing.T) {
	err := ErrInvalidCoordinates.WithField("lat")

	assert.Equal(t, "lat", err.Field)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Contains(t, err.Error(), "field lat")
	assert.Empty(t, ErrInvalidCoordinates.Field)
}

func TestAsDomainErrorPlainError(t *testing.T) {
	_, ok := AsDomainError(errors.New("boom"))
	assert.False(t, ok)
}

func TestProviderApplyRating(t *testing.T) {
	p := &Provider{}
	p.ApplyRating(3)
	p.ApplyRating(5)

	assert.Equal(t, 2, p.ReviewCount)
	assert.Equal(t, 8, p.RatingTotal)
	assert.InDelta(t, 4.0, p.Rating, 1e-9)
}
