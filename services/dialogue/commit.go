// File: services/dialogue/commit.go
package dialogue

import (
	"context"

	"tablevoice/models"

	"go.uber.org/zap"
)

// Commit-time safety-net defaults. Completeness gating should have filled
// the required slots already; these cover anything that slipped through.
const (
	defaultGuests          = 2
	defaultTime            = "19:00"
	defaultName            = "Guest"
	defaultCuisine         = "Any"
	defaultSpecialRequests = "None"
)

// applyBookingDefaults fills any slot still empty at commit time.
func applyBookingDefaults(d models.BookingDetails) models.BookingDetails {
	if d.Name == "" {
		d.Name = defaultName
	}
	if d.Time == "" {
		d.Time = defaultTime
	}
	if d.Guests <= 0 {
		d.Guests = defaultGuests
	}
	if d.Cuisine == "" {
		d.Cuisine = defaultCuisine
	}
	if d.SpecialRequests == "" {
		d.SpecialRequests = defaultSpecialRequests
	}
	return d
}

// commitBooking persists the confirmed snapshot as a booking record and
// schedules a reminder for it. Called only once intent resolves to confirmed.
func (s *DefaultDialogueService) commitBooking(
	ctx context.Context,
	details models.BookingDetails,
	weather *models.WeatherInfo,
) (*models.BookingRecord, error) {
	record := models.BookingRecord{
		BookingDetails: applyBookingDefaults(details),
		Status:         models.BookingStatusConfirmed,
		WeatherInfo:    weather,
	}

	id, err := s.Repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if s.Reminders != nil {
		if err := s.Reminders.Schedule(ctx, record); err != nil {
			s.logger().Warn("failed to schedule booking reminder",
				zap.String("bookingId", id), zap.Error(err))
		}
	}

	return &record, nil
}
