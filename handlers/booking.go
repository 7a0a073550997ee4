// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"

	bookingRepo "tablevoice/database/repository/booking"
	"tablevoice/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the persisted booking records.
type BookingHandler struct {
	Repo bookingRepo.BookingRepository
}

func NewBookingHandler(repo bookingRepo.BookingRepository) *BookingHandler {
	return &BookingHandler{Repo: repo}
}

// ListBookingsHandler returns all booking records, newest first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	records, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetBookingHandler returns a single booking record by ID.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id := c.Param("id")
	record, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", id)
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteBookingHandler removes a booking record by ID.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	id := c.Param("id")
	err := h.Repo.DeleteByID(c.Request.Context(), id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Booking not found", id)
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete booking", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
