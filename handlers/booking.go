package handlers

import (
	"net/http"

	"servicehub/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input booking.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	b, err := h.Service.Create(c.Request.Context(), p, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PayVisitChargeHandler handles POST /bookings/:bookingId/pay-visit-charge.
func (h *BookingHandler) PayVisitChargeHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	b, err := h.Service.PayVisitCharge(c.Request.Context(), c.Param("bookingId"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBookingHandler handles PUT /bookings/:bookingId/complete.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	b, err := h.Service.Complete(c.Request.Context(), c.Param("bookingId"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles PUT /bookings/:bookingId/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	b, err := h.Service.Cancel(c.Request.Context(), c.Param("bookingId"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// MyBookingsHandler handles GET /bookings/my-bookings.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	bookings, err := h.Service.ListForUser(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}
