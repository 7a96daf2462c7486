package booking

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/lock"
	"servicehub/services/notification"
	"servicehub/services/payment"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// confirmWriteTimeout bounds the status write that records a successful charge.
const confirmWriteTimeout = 5 * time.Second

type Config struct {
	Currency string
}

// Manager implements BookingService. Every state change runs under the
// booking's lock and is written conditionally on the expected prior status.
type Manager struct {
	bookings  repository.BookingRepository
	providers repository.ProviderRepository
	gateway   payment.Gateway
	locker    lock.Locker
	publisher notification.Publisher
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

var _ BookingService = (*Manager)(nil)

func NewManager(
	bookings repository.BookingRepository,
	providers repository.ProviderRepository,
	gateway payment.Gateway,
	locker lock.Locker,
	publisher notification.Publisher,
	cfg Config,
	logger *zap.Logger,
) *Manager {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if publisher == nil {
		publisher = notification.NoopPublisher{}
	}
	return &Manager{
		bookings:  bookings,
		providers: providers,
		gateway:   gateway,
		locker:    locker,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// timeslotLayouts are the ISO 8601 forms a booking accepts. Layouts without
// an offset are read as UTC.
var timeslotLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

func parseTimeslot(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var firstErr error
	for _, layout := range timeslotLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func (m *Manager) Create(ctx context.Context, principal models.Principal, in CreateInput) (*models.Booking, error) {
	if principal.UserID == "" {
		return nil, models.ErrNotAuthorized
	}
	in.Address = strings.TrimSpace(in.Address)
	in.Category = strings.TrimSpace(in.Category)
	if in.Address == "" {
		return nil, models.ErrMissingAddress.WithField("address")
	}
	if in.Category == "" {
		return nil, models.ErrMissingCategory.WithField("category")
	}
	timeslot, err := parseTimeslot(in.Timeslot)
	if err != nil {
		return nil, models.ErrInvalidTimeslot.WithField("timeslot").Wrap(err)
	}
	if utf8.RuneCountInString(in.Notes) > models.MaxNotesLength {
		return nil, models.ErrInvalidNotes.WithField("notes")
	}

	provider, err := m.providers.GetByID(ctx, strings.TrimSpace(in.ProviderID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.ErrUnknownOrUnapprovedProvider.WithField("providerId")
		}
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}
	if !provider.Approved {
		return nil, models.ErrUnknownOrUnapprovedProvider.WithField("providerId")
	}

	now := m.now()
	b := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      principal.UserID,
		ProviderID:  provider.ID,
		Category:    in.Category,
		SubCategory: strings.TrimSpace(in.SubCategory),
		Timeslot:    timeslot.UTC(),
		Address:     in.Address,
		Notes:       in.Notes,
		Status:      models.BookingStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.bookings.Create(ctx, b); err != nil {
		m.logger.Error("Failed to create booking", zap.String("user_id", principal.UserID), zap.Error(err))
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}

	m.logger.Info("Booking created",
		zap.String("booking_id", b.ID),
		zap.String("user_id", b.UserID),
		zap.String("provider_id", b.ProviderID))
	m.publisher.Publish(ctx, models.NewBookingEvent(models.EventBookingCreated, b))
	return b, nil
}

// withBookingLock runs fn while holding the booking's lock. The lock is
// released before it returns, so callers publish outside the critical section.
func (m *Manager) withBookingLock(ctx context.Context, bookingID string, fn func() (*models.Booking, error)) (*models.Booking, error) {
	release, err := m.locker.Acquire(ctx, utils.BookingLockPrefix+bookingID)
	if err != nil {
		return nil, lockError(err)
	}
	defer release()
	return fn()
}

func (m *Manager) PayVisitCharge(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error) {
	updated, err := m.withBookingLock(ctx, bookingID, func() (*models.Booking, error) {
		return m.payVisitCharge(ctx, bookingID, principal)
	})
	if err != nil {
		return nil, err
	}
	m.publisher.Publish(ctx, models.NewBookingEvent(models.EventBookingConfirmed, updated))
	return updated, nil
}

func (m *Manager) payVisitCharge(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error) {
	b, err := m.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, models.ErrInvalidStateForPayment)
	}
	if !payPolicy(accessContext{principal: principal, booking: b}) {
		return nil, models.ErrNotAuthorized
	}
	if b.Status != models.BookingStatusPending {
		return nil, models.ErrInvalidStateForPayment.WithState(b.Status)
	}

	provider, err := m.providers.GetByID(ctx, b.ProviderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.ErrProviderNotFound.Wrap(err)
		}
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}

	log := m.logger.With(zap.String("booking_id", b.ID), zap.String("user_id", b.UserID), zap.String("provider_id", b.ProviderID))

	res, err := m.gateway.Charge(ctx, models.ChargeRequest{
		Amount:    provider.VisitCharge,
		Currency:  m.cfg.Currency,
		Reference: b.ID,
		Metadata: map[string]string{
			"bookingId":  b.ID,
			"userId":     b.UserID,
			"providerId": b.ProviderID,
		},
	})
	if !payment.Succeeded(res, err) {
		cause := err
		if cause == nil {
			msg := "payment declined"
			if res != nil && res.Error != "" {
				msg = res.Error
			}
			cause = errors.New(msg)
		}
		log.Warn("Visit charge failed", zap.Float64("amount", provider.VisitCharge), zap.Error(cause))
		return nil, models.ErrPaymentFailed.Wrap(cause)
	}

	// The charge has happened; record it even if the caller has gone away.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), confirmWriteTimeout)
	defer cancel()

	updated, err := m.bookings.Transition(writeCtx, b.ID, models.BookingStatusPending, repository.StatusChange{
		To:                       models.BookingStatusConfirmed,
		At:                       m.now(),
		VisitChargeTransactionID: res.TransactionID,
	})
	if err != nil {
		log.Error("Charged but failed to confirm booking",
			zap.String("transaction_id", res.TransactionID), zap.Error(err))
		return nil, storeError(err, models.ErrInvalidStateForPayment)
	}

	log.Info("Visit charge paid", zap.String("transaction_id", res.TransactionID))
	return updated, nil
}

func (m *Manager) Complete(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error) {
	updated, err := m.withBookingLock(ctx, bookingID, func() (*models.Booking, error) {
		return m.complete(ctx, bookingID, principal)
	})
	if err != nil {
		return nil, err
	}
	m.publisher.Publish(ctx, models.NewBookingEvent(models.EventBookingCompleted, updated))
	return updated, nil
}

func (m *Manager) complete(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error) {
	b, err := m.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, models.ErrInvalidStateForCompletion)
	}
	provider, err := m.providers.GetByID(ctx, b.ProviderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}
	if !completePolicy(accessContext{principal: principal, booking: b, provider: provider}) {
		return nil, models.ErrNotAuthorized
	}
	if b.Status != models.BookingStatusConfirmed {
		return nil, models.ErrInvalidStateForCompletion.WithState(b.Status)
	}

	updated, err := m.bookings.Transition(ctx, b.ID, models.BookingStatusConfirmed, repository.StatusChange{
		To: models.BookingStatusCompleted,
		At: m.now(),
	})
	if err != nil {
		return nil, storeError(err, models.ErrInvalidStateForCompletion)
	}

	m.logger.Info("Booking completed",
		zap.String("booking_id", updated.ID),
		zap.String("user_id", principal.UserID),
		zap.String("role", string(principal.Role)))
	return updated, nil
}

func (m *Manager) Cancel(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error) {
	updated, err := m.withBookingLock(ctx, bookingID, func() (*models.Booking, error) {
		return m.cancel(ctx, bookingID, principal)
	})
	if err != nil {
		return nil, err
	}
	m.publisher.Publish(ctx, models.NewBookingEvent(models.EventBookingCancelled, updated))
	return updated, nil
}

func (m *Manager) cancel(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error) {
	b, err := m.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, models.ErrInvalidStateForCancellation)
	}
	if !cancelPolicy(accessContext{principal: principal, booking: b}) {
		return nil, models.ErrNotAuthorized
	}
	if b.Status != models.BookingStatusPending {
		return nil, models.ErrInvalidStateForCancellation.WithState(b.Status)
	}

	updated, err := m.bookings.Transition(ctx, b.ID, models.BookingStatusPending, repository.StatusChange{
		To: models.BookingStatusCancelled,
		At: m.now(),
	})
	if err != nil {
		return nil, storeError(err, models.ErrInvalidStateForCancellation)
	}

	m.logger.Info("Booking cancelled",
		zap.String("booking_id", updated.ID),
		zap.String("user_id", principal.UserID))
	return updated, nil
}

func (m *Manager) ListForUser(ctx context.Context, principal models.Principal) ([]models.Booking, error) {
	if principal.UserID == "" {
		return nil, models.ErrNotAuthorized
	}
	bookings, err := m.bookings.ListByUser(ctx, principal.UserID)
	if err != nil {
		m.logger.Error("Failed to list bookings", zap.String("user_id", principal.UserID), zap.Error(err))
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
