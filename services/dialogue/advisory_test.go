package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tablevoice/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeForecast counts lookups and returns a canned result.
type fakeForecast struct {
	info  *models.WeatherInfo
	err   error
	calls int
}

func (f *fakeForecast) Lookup(ctx context.Context, date string, loc *models.GeoPoint) (*models.WeatherInfo, error) {
	f.calls++
	return f.info, f.err
}

func advisoryService(f *fakeForecast) *DefaultDialogueService {
	return &DefaultDialogueService{Forecast: f, Logger: zap.NewNop()}
}

func TestAdvisory_AppendsExactlyOneForecastSentence(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Condition: "clear sky", TemperatureC: 21.6, Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{Date: "2024-06-02", Seating: models.SeatingOutdoor}
	reply := "Your table is noted."
	history := []models.Message{{Sender: models.SenderAgent, Text: "Hello!"}}

	info := svc.applyWeatherAdvisory(context.Background(), history, nil, &details, &reply, false)

	assert.Equal(t, 1, fc.calls)
	assert.NotNil(t, info)
	assert.Equal(t, 1, strings.Count(reply, "forecast"))
	assert.Contains(t, reply, "clear sky")
	assert.Contains(t, reply, "22°C") // rounded from 21.6
}

func TestAdvisory_SkipsWhenAgentAlreadyMentionedWeather(t *testing.T) {
	histories := [][]models.Message{
		{{Sender: models.SenderAgent, Text: "The WEATHER looks lovely."}},
		{
			{Sender: models.SenderAgent, Text: "Hello!"},
			{Sender: models.SenderUser, Text: "hi"},
			{Sender: models.SenderAgent, Text: "I checked the forecast earlier."},
			{Sender: models.SenderAgent, Text: "Anything else?"},
		},
	}
	for i, history := range histories {
		fc := &fakeForecast{info: &models.WeatherInfo{Condition: "rain", Found: true}}
		svc := advisoryService(fc)

		details := models.BookingDetails{Date: "2024-06-02"}
		reply := "Noted."
		info := svc.applyWeatherAdvisory(context.Background(), history, nil, &details, &reply, false)

		assert.Zerof(t, fc.calls, "case %d: forecast must not be queried", i)
		assert.Nil(t, info)
		assert.Equal(t, "Noted.", reply)
	}
}

func TestAdvisory_UserWeatherTalkDoesNotSuppress(t *testing.T) {
	// Only agent messages count for the dedup scan.
	fc := &fakeForecast{info: &models.WeatherInfo{Condition: "clear sky", TemperatureC: 20, Found: true}}
	svc := advisoryService(fc)

	history := []models.Message{{Sender: models.SenderUser, Text: "I don't care about the weather"}}
	details := models.BookingDetails{Date: "2024-06-02"}
	reply := "Noted."
	svc.applyWeatherAdvisory(context.Background(), history, nil, &details, &reply, false)

	assert.Equal(t, 1, fc.calls)
}

func TestAdvisory_SkipsWithoutDate(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{}
	reply := "Noted."
	info := svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, false)

	assert.Zero(t, fc.calls)
	assert.Nil(t, info)
}

func TestAdvisory_SessionFlagShortCircuitsLookup(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{Date: "2024-06-02"}
	reply := "Noted."
	info := svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, true)

	assert.Zero(t, fc.calls)
	assert.Nil(t, info)
}

func TestAdvisory_LookupFailureDegradesSilently(t *testing.T) {
	tests := []struct {
		name string
		fc   *fakeForecast
	}{
		{name: "call error", fc: &fakeForecast{err: errors.New("network down")}},
		{name: "date outside horizon", fc: &fakeForecast{info: &models.WeatherInfo{Found: false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := advisoryService(tt.fc)
			details := models.BookingDetails{Date: "2024-06-09"}
			reply := "Noted."
			info := svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, false)

			assert.Nil(t, info)
			assert.Equal(t, "Noted.", reply)
		})
	}
}

func TestAdvisory_RainForcesIndoorSeatingWhenUnset(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Condition: "light rain", TemperatureC: 14.2, Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{Date: "2024-06-02"}
	reply := "Noted."
	svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, false)

	assert.Equal(t, models.SeatingIndoor, details.Seating)
	assert.Equal(t, 1, strings.Count(reply, "indoor seating"))
}

func TestAdvisory_RainNeverOverridesChosenSeating(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Condition: "heavy rain", Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{Date: "2024-06-02", Seating: models.SeatingOutdoor}
	reply := "Noted."
	svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, false)

	assert.Equal(t, models.SeatingOutdoor, details.Seating)
	assert.NotContains(t, reply, "indoor seating")
}

func TestAdvisory_NonRainNeverForcesSeating(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Condition: "scattered clouds", Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{Date: "2024-06-02"}
	reply := "Noted."
	svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, false)

	assert.Empty(t, details.Seating)
}

func TestAdvisory_RepliesAlreadyDiscussingWeatherAreNotDecorated(t *testing.T) {
	fc := &fakeForecast{info: &models.WeatherInfo{Condition: "clear sky", TemperatureC: 20, Found: true}}
	svc := advisoryService(fc)

	details := models.BookingDetails{Date: "2024-06-02"}
	reply := "The weather should be fine for your visit."
	svc.applyWeatherAdvisory(context.Background(), nil, nil, &details, &reply, false)

	assert.Equal(t, "The weather should be fine for your visit.", reply)
}
