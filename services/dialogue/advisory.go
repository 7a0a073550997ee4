// File: services/dialogue/advisory.go
package dialogue

import (
	"context"
	"fmt"
	"math"
	"strings"

	"tablevoice/models"

	"go.uber.org/zap"
)

// weatherAlreadyDiscussed scans every prior agent message for a mention of
// the forecast. Once the assistant has brought up the weather, it must not
// do so again for the rest of the session.
func weatherAlreadyDiscussed(history []models.Message) bool {
	for _, msg := range history {
		if msg.Sender != models.SenderAgent {
			continue
		}
		lower := strings.ToLower(msg.Text)
		if strings.Contains(lower, "forecast") || strings.Contains(lower, "weather") {
			return true
		}
	}
	return false
}

// applyWeatherAdvisory conditionally looks up the forecast for the booking
// date and folds an advisory into the reply and snapshot. Forecast failures
// degrade to a silent no-op; the user never sees a weather error. Returns
// the forecast used, or nil when no advisory was delivered.
func (s *DefaultDialogueService) applyWeatherAdvisory(
	ctx context.Context,
	history []models.Message,
	loc *models.GeoPoint,
	details *models.BookingDetails,
	reply *string,
	alreadyAdvised bool,
) *models.WeatherInfo {
	if details.Date == "" {
		return nil
	}
	if alreadyAdvised || weatherAlreadyDiscussed(history) {
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.forecastTimeout())
	defer cancel()

	info, err := s.Forecast.Lookup(lookupCtx, details.Date, loc)
	if err != nil {
		s.logger().Debug("forecast lookup failed, skipping advisory",
			zap.String("date", details.Date), zap.Error(err))
		return nil
	}
	if info == nil || !info.Found {
		return nil
	}

	// Guard against the capability having already discussed the weather in
	// this very reply.
	lowerReply := strings.ToLower(*reply)
	if !strings.Contains(lowerReply, "weather") && !strings.Contains(lowerReply, "forecast") {
		*reply += fmt.Sprintf(" By the way, the forecast for %s is %s with a temperature around %d°C.",
			details.Date, info.Condition, int(math.Round(info.TemperatureC)))
	}

	if strings.Contains(strings.ToLower(info.Condition), "rain") && details.Seating == "" {
		details.Seating = models.SeatingIndoor
		*reply += " Since rain is expected, I've suggested indoor seating for you."
	}

	return info
}
