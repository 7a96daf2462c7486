package repository

import (
	"servicehub/database"
	bookingRepo "servicehub/database/repository/booking"
	"servicehub/database/repository/memory"
	providerRepo "servicehub/database/repository/provider"
	reviewRepo "servicehub/database/repository/review"
)

// Re-export the ProviderRepository interface and constructor.
type ProviderRepository = providerRepo.ProviderRepository

type NearQuery = providerRepo.NearQuery

var NewMongoProviderRepo = providerRepo.NewMongoProviderRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

type StatusChange = bookingRepo.StatusChange

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the ReviewRepository interface and constructor.
type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo

// In-process store implementing all three repositories.
type MemoryStore = memory.Store

var NewMemoryStore = memory.New

// Sentinel errors shared by every implementation.
var (
	ErrNotFound       = database.ErrNotFound
	ErrDuplicate      = database.ErrDuplicate
	ErrStatusConflict = database.ErrStatusConflict
)
