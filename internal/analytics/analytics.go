package analytics

import (
	"context"
	"sort"
	"time"

	"shomer-bot/internal/storage"
)

type Service struct {
	store *storage.Store
}

func New(store *storage.Store) *Service {
	return &Service{store: store}
}

// Report aggregates a guild's audit trail over a window.
type Report struct {
	Since     time.Time
	Total     int
	ByLevel   map[string]int
	ByEvent   map[string]int
	TopEvents []EventCount
}

type EventCount struct {
	Event string
	Count int
}

func (s *Service) Report(ctx context.Context, guildID string, since time.Time) (Report, error) {
	logs, err := s.store.ListAuditLogs(ctx, guildID, since)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Since:   since,
		ByLevel: make(map[string]int),
		ByEvent: make(map[string]int),
	}
	for _, log := range logs {
		report.Total++
		report.ByLevel[log.Level]++
		report.ByEvent[log.Event]++
	}
	report.TopEvents = topEvents(report.ByEvent, 5)
	return report, nil
}

func topEvents(counts map[string]int, limit int) []EventCount {
	events := make([]EventCount, 0, len(counts))
	for event, count := range counts {
		events = append(events, EventCount{Event: event, Count: count})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Count != events[j].Count {
			return events[i].Count > events[j].Count
		}
		return events[i].Event < events[j].Event
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}
