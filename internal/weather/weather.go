package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const baseURL = "https://api.open-meteo.com/v1/forecast"

// Forecast mirrors the daily block of the Open-Meteo response.
type Forecast struct {
	Daily struct {
		Time           []string  `json:"time"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		WeatherCode    []int     `json:"weathercode"`
	} `json:"daily"`
}

// Client fetches daily forecasts for a fixed place.
type Client struct {
	http  *http.Client
	log   *zap.Logger
	lat   float64
	lon   float64
	tz    string
	place string
}

func NewClient(log *zap.Logger, lat, lon float64, tz, place string) *Client {
	return &Client{
		http:  &http.Client{Timeout: 12 * time.Second},
		log:   log,
		lat:   lat,
		lon:   lon,
		tz:    tz,
		place: place,
	}
}

// GetDaily fetches min/max temperature and weather code per day for the
// inclusive date range.
func (c *Client) GetDaily(ctx context.Context, start, end time.Time) (*Forecast, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.lat, 'f', 3, 64))
	q.Set("longitude", strconv.FormatFloat(c.lon, 'f', 3, 64))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	q.Set("timezone", c.tz)
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "shiftmate-bot/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather api http %d: %s", resp.StatusCode, body)
	}

	var fc Forecast
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("weather api decode: %w", err)
	}
	if len(fc.Daily.Time) == 0 {
		return nil, fmt.Errorf("weather api returned empty daily block")
	}
	return &fc, nil
}

// Block renders the forecast for the date range, or a graceful fallback when
// the lookup fails. Weather never breaks schedule rendering.
func (c *Client) Block(ctx context.Context, start, end time.Time) string {
	fc, err := c.GetDaily(ctx, start, end)
	if err != nil {
		c.log.Warn("weather lookup failed", zap.Error(err))
		return unavailable(c.place)
	}
	return Format(c.place, fc)
}

// Format renders a forecast as a compact per-day listing.
func Format(place string, fc *Forecast) string {
	if fc == nil || len(fc.Daily.Time) == 0 {
		return unavailable(place)
	}

	out := "📍" + place + "\n🌦 Weather:\n"
	for i, day := range fc.Daily.Time {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		tMin := int(roundHalf(fc.Daily.TemperatureMin[i]))
		tMax := int(roundHalf(fc.Daily.TemperatureMax[i]))
		out += fmt.Sprintf("%s  %d°/%d°  %s\n",
			d.Format("02.01"), tMin, tMax, Icon(fc.Daily.WeatherCode[i]))
	}
	return out
}

func unavailable(place string) string {
	return "📍" + place + "\n🌦 Weather: unavailable right now"
}

// Icon maps a WMO weather code to an emoji.
func Icon(code int) string {
	switch {
	case code == 0:
		return "☀️"
	case code == 1 || code == 2:
		return "🌤"
	case code == 3:
		return "☁️"
	case code >= 45 && code <= 48:
		return "🌫"
	case code >= 51 && code <= 67:
		return "🌧"
	case code >= 71 && code <= 77:
		return "🌨"
	case code >= 80 && code <= 82:
		return "🌧"
	case code >= 85 && code <= 86:
		return "🌨"
	case code >= 95:
		return "⛈"
	}
	return "🌡"
}

func roundHalf(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}
