package alerts

import (
	"testing"
	"time"
)

func TestNormalizeEmptyShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"whitespace", "   \n\t"},
		{"bom only", "\xef\xbb\xbf"},
		{"empty array", "[]"},
		{"empty object", "{}"},
	}
	for _, tc := range cases {
		records, err := Normalize([]byte(tc.body))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if len(records) != 0 {
			t.Fatalf("%s: expected zero alerts, got %d", tc.name, len(records))
		}
	}
}

func TestNormalizeBareArray(t *testing.T) {
	body := `[{"alertDate":"2026-08-23 10:00:00","title":"ירי רקטות וטילים","data":"אשקלון"}]`
	records, err := Normalize([]byte(body))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(records))
	}
	if records[0].Data != "אשקלון" {
		t.Fatalf("unexpected data: %q", records[0].Data)
	}
}

func TestNormalizeSingleObject(t *testing.T) {
	body := `{"alertDate":"2026-08-23 10:00:00","title":"t","data":"שדרות"}`
	records, err := Normalize([]byte(body))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 1 || records[0].Data != "שדרות" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestNormalizeWrappedObject(t *testing.T) {
	body := `{"data":{"alertDate":"2026-08-23 10:00:00","title":"t","data":"נתיבות"}}`
	records, err := Normalize([]byte(body))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 1 || records[0].Data != "נתיבות" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestNormalizeWrappedArray(t *testing.T) {
	body := `{"data":[{"title":"a","data":"שדרות"},{"title":"b","data":"אשקלון"}]}`
	records, err := Normalize([]byte(body))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(records))
	}
}

func TestNormalizeMultiValuedLocation(t *testing.T) {
	body := `{"title":"t","data":["שדרות","נתיבות"]}`
	records, err := Normalize([]byte(body))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(records))
	}
	if records[0].Data != "שדרות, נתיבות" {
		t.Fatalf("expected joined locations, got %q", records[0].Data)
	}
}

func TestNormalizeNonJSON(t *testing.T) {
	if _, err := Normalize([]byte("<html>maintenance</html>")); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}

func TestAlertKey(t *testing.T) {
	alert := Alert{AlertDate: "2026-08-23 10:00:00", Title: "t", Data: "אשקלון"}
	if alert.Key() != "2026-08-23 10:00:00-t-אשקלון" {
		t.Fatalf("unexpected key: %q", alert.Key())
	}

	empty := Alert{}
	if empty.Key() != "--" {
		t.Fatalf("expected degenerate key for empty alert, got %q", empty.Key())
	}
}

func TestAlertDateFallback(t *testing.T) {
	received := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	parsed := Alert{AlertDate: "2026-08-23 10:30:00"}.Date(received)
	if parsed.Hour() != 10 || parsed.Minute() != 30 {
		t.Fatalf("unexpected parsed date: %v", parsed)
	}

	if got := (Alert{}).Date(received); !got.Equal(received) {
		t.Fatalf("expected receipt time fallback, got %v", got)
	}
	if got := (Alert{AlertDate: "not a date"}).Date(received); !got.Equal(received) {
		t.Fatalf("expected receipt time fallback for garbage, got %v", got)
	}
}
