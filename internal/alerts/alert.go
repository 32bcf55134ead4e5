package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Alert is one raw record from the public warning feed. Every field is
// optional; the feed routinely omits or reshapes them.
type Alert struct {
	AlertDate string   `json:"alertDate"`
	Title     string   `json:"title"`
	Data      AreaList `json:"data"`
}

// Key derives the identity string used for deduplication. It is a heuristic:
// the feed assigns no unique ID, so distinct events sharing the same
// timestamp, category and location collapse into one.
func (a Alert) Key() string {
	return a.AlertDate + "-" + a.Title + "-" + string(a.Data)
}

// Date parses the feed timestamp, falling back to the receipt time when the
// field is missing or unparseable.
func (a Alert) Date(received time.Time) time.Time {
	raw := strings.TrimSpace(a.AlertDate)
	if raw == "" {
		return received
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	return received
}

// AreaList accepts the feed's location field as either a single string or an
// array of strings, flattened to one comma-separated value.
type AreaList string

func (l *AreaList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = AreaList(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = AreaList(strings.Join(many, ", "))
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = ""
		return nil
	}
	return fmt.Errorf("unsupported location value %s", data)
}

type payloadShape int

const (
	shapeEmpty payloadShape = iota
	shapeBareArray
	shapeSingleObject
	shapeWrapped
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize maps any of the feed's observed response shapes to a flat list
// of alert records. An empty body, empty array or empty object all mean "no
// active alerts" and yield a nil slice with no error. A payload that is not
// JSON at all is an error for the caller to throttle-log.
func Normalize(body []byte) ([]Alert, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), utf8BOM))
	if len(trimmed) == 0 {
		return nil, nil
	}

	shape, err := detectShape(trimmed)
	if err != nil {
		return nil, err
	}

	switch shape {
	case shapeEmpty:
		return nil, nil
	case shapeBareArray:
		var list []Alert
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode alert array: %w", err)
		}
		return list, nil
	case shapeSingleObject:
		var single Alert
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("decode alert object: %w", err)
		}
		return []Alert{single}, nil
	case shapeWrapped:
		var wrapper struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("decode wrapper: %w", err)
		}
		inner := bytes.TrimSpace(wrapper.Data)
		if len(inner) > 0 && inner[0] == '[' {
			var list []Alert
			if err := json.Unmarshal(inner, &list); err != nil {
				return nil, fmt.Errorf("decode wrapped array: %w", err)
			}
			return list, nil
		}
		var single Alert
		if err := json.Unmarshal(inner, &single); err != nil {
			return nil, fmt.Errorf("decode wrapped object: %w", err)
		}
		return []Alert{single}, nil
	default:
		return nil, nil
	}
}

func detectShape(trimmed []byte) (payloadShape, error) {
	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return shapeEmpty, fmt.Errorf("invalid feed payload: %w", err)
		}
		if len(list) == 0 {
			return shapeEmpty, nil
		}
		return shapeBareArray, nil
	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return shapeEmpty, fmt.Errorf("invalid feed payload: %w", err)
		}
		if len(object) == 0 {
			return shapeEmpty, nil
		}
		if raw, ok := object["data"]; ok && holdsAlertRecords(raw) {
			return shapeWrapped, nil
		}
		return shapeSingleObject, nil
	default:
		return shapeEmpty, fmt.Errorf("invalid feed payload: unexpected leading byte %q", trimmed[0])
	}
}

// holdsAlertRecords reports whether a top-level "data" value wraps alert
// objects, as opposed to being the location field of a single alert (a
// string or array of strings).
func holdsAlertRecords(raw json.RawMessage) bool {
	inner := bytes.TrimSpace(raw)
	if len(inner) == 0 {
		return false
	}
	if inner[0] == '{' {
		return true
	}
	if inner[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(inner, &elements); err != nil || len(elements) == 0 {
			return false
		}
		first := bytes.TrimSpace(elements[0])
		return len(first) > 0 && first[0] == '{'
	}
	return false
}
