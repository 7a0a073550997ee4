package models

import "time"

// Seating preferences the assistant recognises.
const (
	SeatingIndoor  = "Indoor"
	SeatingOutdoor = "Outdoor"
	SeatingAny     = "Any"
)

// Booking record statuses.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

// BookingDetails is the booking snapshot filled in across turns. Zero values
// mean "not provided yet"; the snapshot is partial until name, date, time,
// guests and seating are all set.
type BookingDetails struct {
	Name            string `bson:"name,omitempty" json:"name"`
	Date            string `bson:"date,omitempty" json:"date"` // calendar date, "YYYY-MM-DD"
	Time            string `bson:"time,omitempty" json:"time"`
	Guests          int    `bson:"guests,omitempty" json:"guests"`
	Seating         string `bson:"seating,omitempty" json:"seating"`
	Cuisine         string `bson:"cuisine,omitempty" json:"cuisine"`
	SpecialRequests string `bson:"specialRequests,omitempty" json:"specialRequests"`
}

// WeatherInfo is the forecast looked up for the booking date. It is folded
// into the committed record, never stored on its own.
type WeatherInfo struct {
	Condition    string  `bson:"condition,omitempty" json:"condition,omitempty"`
	TemperatureC float64 `bson:"temperatureC,omitempty" json:"temperatureC,omitempty"`
	Found        bool    `bson:"found" json:"found"`
}

// BookingRecord is the persisted booking, created exactly once at commit.
type BookingRecord struct {
	ID             string       `bson:"id" json:"id"`
	BookingDetails `bson:",inline"`
	Status         string       `bson:"status" json:"status"`
	WeatherInfo    *WeatherInfo `bson:"weatherInfo,omitempty" json:"weatherInfo,omitempty"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the task payload queued at commit time so the guest can
// be pinged ahead of their reservation.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
}
