package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Doer abstracts the HTTP client so tests can inject fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var ErrCityNotFound = errors.New("city not found")

type Config struct {
	GeocodeURL  string
	ForecastURL string
	Timeout     time.Duration
}

// Client resolves a city name to coordinates and fetches the current
// conditions there. Both calls go to the Open-Meteo public APIs, which need
// no key.
type Client struct {
	cfg    Config
	http   Doer
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{}, logger: logger}
}

func (c *Client) WithHTTPClient(client Doer) {
	c.http = client
}

type Conditions struct {
	City         string
	Country      string
	TemperatureC float64
	WindKmh      float64
	Code         int
	Description  string
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current looks the city up and returns its live conditions.
func (c *Client) Current(ctx context.Context, city string) (Conditions, error) {
	geoURL := fmt.Sprintf("%s?name=%s&count=1&language=he", c.cfg.GeocodeURL, url.QueryEscape(city))
	var geo geocodeResponse
	if err := c.getJSON(ctx, geoURL, &geo); err != nil {
		return Conditions{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(geo.Results) == 0 {
		return Conditions{}, ErrCityNotFound
	}
	place := geo.Results[0]

	forecastURL := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current_weather=true",
		c.cfg.ForecastURL, place.Latitude, place.Longitude)
	var forecast forecastResponse
	if err := c.getJSON(ctx, forecastURL, &forecast); err != nil {
		return Conditions{}, fmt.Errorf("forecast for %q: %w", city, err)
	}

	return Conditions{
		City:         place.Name,
		Country:      place.Country,
		TemperatureC: forecast.CurrentWeather.Temperature,
		WindKmh:      forecast.CurrentWeather.WindSpeed,
		Code:         forecast.CurrentWeather.WeatherCode,
		Description:  describeCode(forecast.CurrentWeather.WeatherCode),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// WMO weather interpretation codes, the subset Open-Meteo actually emits.
func describeCode(code int) string {
	switch {
	case code == 0:
		return "בהיר"
	case code <= 3:
		return "מעונן חלקית"
	case code <= 48:
		return "ערפל"
	case code <= 57:
		return "טפטוף"
	case code <= 67:
		return "גשם"
	case code <= 77:
		return "שלג"
	case code <= 82:
		return "ממטרים"
	case code <= 86:
		return "ממטרי שלג"
	default:
		return "סופת רעמים"
	}
}
