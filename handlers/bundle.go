// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	TurnHandler       gin.HandlerFunc
	TranscribeHandler gin.HandlerFunc

	// Booking record endpoints
	ListBookingsHandler  gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	DeleteBookingHandler gin.HandlerFunc
}
