package handlers

import (
	"net/http"

	"servana/middleware"
	"servana/models"
	"servana/services/scheduling"
	"servana/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling service operations over HTTP.
type BookingHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

func NewBookingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthenticated", "no authenticated actor")
		return
	}

	var req scheduling.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	booking, err := h.Svc.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	h.Logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("providerID", booking.ProviderID),
		zap.String("status", string(booking.Status)))
	c.JSON(http.StatusCreated, booking)
}

// TransitionBooking handles POST /api/bookings/:id/transition.
func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthenticated", "no authenticated actor")
		return
	}
	bookingID := c.Param("id")

	var input struct {
		Event  string `json:"event" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	booking, err := h.Svc.Transition(c.Request.Context(), actor, bookingID, scheduling.TransitionEvent(input.Event), input.Reason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RescheduleBooking handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthenticated", "no authenticated actor")
		return
	}
	bookingID := c.Param("id")

	var input struct {
		Date  string `json:"date" binding:"required"`
		Start int    `json:"start"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	booking, err := h.Svc.Reschedule(c.Request.Context(), actor, bookingID, input.Date, input.Start)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthenticated", "no authenticated actor")
		return
	}

	filter := scheduling.ListFilter{
		ProviderID: c.Query("providerId"),
		Status:     models.BookingStatus(c.Query("status")),
		FromDate:   c.Query("from"),
		ToDate:     c.Query("to"),
	}

	bookings, err := h.Svc.ListBookings(c.Request.Context(), actor, filter)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}
