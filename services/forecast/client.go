// File: services/forecast/client.go
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tablevoice/models"

	"github.com/go-redis/redis/v8"
)

// Service looks up the forecast for a calendar date. Found=false means the
// date falls outside the provider's coverage horizon.
type Service interface {
	Lookup(ctx context.Context, date string, loc *models.GeoPoint) (*models.WeatherInfo, error)
}

// OpenWeatherClient queries an OpenWeatherMap-style 5-day/3-hour forecast
// endpoint. Responses are cached in Redis per location so repeated turns in
// the same conversation don't hammer the provider.
type OpenWeatherClient struct {
	BaseURL     string
	APIKey      string
	DefaultCity string
	HTTP        *http.Client
	Cache       *redis.Client // optional
	CacheTTL    time.Duration
}

const forecastCachePrefix = "forecast:"

func NewOpenWeatherClient(baseURL, apiKey, defaultCity string, cache *redis.Client) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &OpenWeatherClient{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		DefaultCity: defaultCity,
		HTTP:        &http.Client{Timeout: 5 * time.Second},
		Cache:       cache,
		CacheTTL:    10 * time.Minute,
	}
}

// forecastResponse mirrors the provider's list-of-entries payload. Each entry
// carries a "dt_txt" stamp like "2024-06-02 18:00:00".
type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Lookup fetches the forecast list for the given location (or the default
// city) and returns the first entry whose date-time stamp contains the target
// calendar date. A date with no matching entry yields Found=false, nil error.
func (c *OpenWeatherClient) Lookup(ctx context.Context, date string, loc *models.GeoPoint) (*models.WeatherInfo, error) {
	body, err := c.fetch(ctx, loc)
	if err != nil {
		return nil, err
	}

	var decoded forecastResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("forecast: decode response: %w", err)
	}

	for _, entry := range decoded.List {
		if !strings.Contains(entry.DtTxt, date) {
			continue
		}
		info := &models.WeatherInfo{
			TemperatureC: entry.Main.Temp,
			Found:        true,
		}
		if len(entry.Weather) > 0 {
			info.Condition = entry.Weather[0].Description
		}
		return info, nil
	}
	return &models.WeatherInfo{Found: false}, nil
}

func (c *OpenWeatherClient) fetch(ctx context.Context, loc *models.GeoPoint) ([]byte, error) {
	q := url.Values{}
	q.Set("units", "metric")
	q.Set("appid", c.APIKey)

	var cacheKey string
	if loc != nil {
		q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
		q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', 4, 64))
		cacheKey = forecastCachePrefix + q.Get("lat") + "," + q.Get("lon")
	} else {
		q.Set("q", c.DefaultCity)
		cacheKey = forecastCachePrefix + c.DefaultCity
	}

	if c.Cache != nil {
		if cached, err := c.Cache.Get(ctx, cacheKey).Result(); err == nil {
			return []byte(cached), nil
		}
	}

	endpoint := fmt.Sprintf("%s/forecast?%s", strings.TrimRight(c.BaseURL, "/"), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast: provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		// Cache writes are best-effort.
		_ = c.Cache.Set(ctx, cacheKey, body, c.CacheTTL).Err()
	}
	return body, nil
}
