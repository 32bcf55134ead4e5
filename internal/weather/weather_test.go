package weather

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestCurrentHappyPath(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())
	client.WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Host, "geocoding") {
			return jsonResponse(`{"results":[{"name":"Tel Aviv","country":"Israel","latitude":32.08,"longitude":34.78}]}`), nil
		}
		return jsonResponse(`{"current_weather":{"temperature":29.5,"windspeed":12.3,"weathercode":0}}`), nil
	}))

	conditions, err := client.Current(context.Background(), "tel aviv")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if conditions.City != "Tel Aviv" || conditions.Country != "Israel" {
		t.Fatalf("unexpected place: %+v", conditions)
	}
	if conditions.TemperatureC != 29.5 || conditions.WindKmh != 12.3 {
		t.Fatalf("unexpected readings: %+v", conditions)
	}
	if conditions.Description != "בהיר" {
		t.Fatalf("unexpected description: %q", conditions.Description)
	}
}

func TestCurrentCityNotFound(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())
	client.WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"results":[]}`), nil
	}))

	_, err := client.Current(context.Background(), "nowhere")
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}

func TestCurrentUpstreamError(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())
	client.WithHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader(""))}, nil
	}))

	if _, err := client.Current(context.Background(), "tel aviv"); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestDescribeCodeBuckets(t *testing.T) {
	cases := map[int]string{
		0:  "בהיר",
		2:  "מעונן חלקית",
		45: "ערפל",
		61: "גשם",
		95: "סופת רעמים",
	}
	for code, want := range cases {
		if got := describeCode(code); got != want {
			t.Fatalf("code %d: got %q, want %q", code, got, want)
		}
	}
}
