package bookingRepo

import (
	"context"
	"errors"

	"tablevoice/database"
	"tablevoice/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a booking record does not exist.
var ErrNotFound = errors.New("booking not found")

// BookingRepository is the persistence surface for committed bookings.
type BookingRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	List(ctx context.Context) ([]models.BookingRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("tablevoice")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
