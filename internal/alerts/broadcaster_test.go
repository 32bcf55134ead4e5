package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"shomer-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func TestBroadcastIsolatesFailures(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()
	for _, id := range []string{"c1", "c2", "c3"} {
		if err := registry.Add(ctx, "g1", id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	client := &fakeClient{
		channels: map[string]*discordgo.Channel{
			"c1": textChannel("c1"),
			"c2": textChannel("c2"),
			"c3": textChannel("c3"),
		},
		sendErr: map[string]error{"c2": errors.New("missing permissions")},
	}

	broadcaster := NewBroadcaster(registry, zap.NewNop(), 0xEF4444)
	alert := Alert{AlertDate: "2026-08-23 10:00:00", Title: "ירי רקטות וטילים", Data: "אשקלון"}
	outcomes := broadcaster.Broadcast(ctx, alert, time.Now(), client)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(outcomes))
	}
	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			succeeded++
		} else if outcome.ChannelID != "c2" {
			t.Fatalf("unexpected failure on %s: %v", outcome.ChannelID, outcome.Err)
		}
	}
	if succeeded != 2 {
		t.Fatalf("expected 2 successes, got %d", succeeded)
	}
	if len(client.sent) != 2 {
		t.Fatalf("expected sends to c1 and c3, got %v", client.sent)
	}
}

func TestBroadcastMultipleGuilds(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()
	if err := registry.Add(ctx, "g1", "c1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := registry.Add(ctx, "g2", "c2"); err != nil {
		t.Fatalf("add: %v", err)
	}

	client := &fakeClient{channels: map[string]*discordgo.Channel{
		"c1": textChannel("c1"),
		"c2": textChannel("c2"),
	}}

	broadcaster := NewBroadcaster(registry, zap.NewNop(), 0xEF4444)
	outcomes := broadcaster.Broadcast(ctx, Alert{Data: "שדרות"}, time.Now(), client)

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(outcomes))
	}
	if len(client.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %v", client.sent)
	}
}

func TestBroadcastFallsBackToLastLoadedLists(t *testing.T) {
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	registry := NewRegistry(store, zap.NewNop())

	ctx := context.Background()
	if err := registry.Add(ctx, "g1", "c1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	client := &fakeClient{channels: map[string]*discordgo.Channel{
		"c1": textChannel("c1"),
	}}
	broadcaster := NewBroadcaster(registry, zap.NewNop(), 0xEF4444)

	outcomes := broadcaster.Broadcast(ctx, Alert{Data: "אשקלון"}, time.Now(), client)
	if len(outcomes) != 1 || outcomes[0].Err != nil {
		t.Fatalf("expected one clean delivery, got %v", outcomes)
	}

	// The store dies mid-incident; the next broadcast must still reach the
	// channels loaded on the previous cycle.
	store.Close()
	outcomes = broadcaster.Broadcast(ctx, Alert{Data: "שדרות"}, time.Now(), client)
	if len(outcomes) != 1 || outcomes[0].Err != nil {
		t.Fatalf("expected delivery from last loaded lists, got %v", outcomes)
	}
	if len(client.sent) != 2 {
		t.Fatalf("expected 2 deliveries total, got %v", client.sent)
	}
}

func TestBroadcastSkipsWhenNothingEverLoaded(t *testing.T) {
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	registry := NewRegistry(store, zap.NewNop())
	store.Close()

	client := &fakeClient{}
	broadcaster := NewBroadcaster(registry, zap.NewNop(), 0xEF4444)

	outcomes := broadcaster.Broadcast(context.Background(), Alert{Data: "אשקלון"}, time.Now(), client)
	if outcomes != nil {
		t.Fatalf("expected no deliveries without a prior successful load, got %v", outcomes)
	}
	if len(client.sent) != 0 {
		t.Fatalf("expected no sends, got %v", client.sent)
	}
}

func TestBuildAlertEmbedRendersOnce(t *testing.T) {
	received := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	alert := Alert{Title: "ירי רקטות וטילים", Data: "שדרות"}
	embed := BuildAlertEmbed(alert, received, 0xEF4444)

	if embed.Title != "🚀 ירי רקטות וטילים" {
		t.Fatalf("unexpected title: %q", embed.Title)
	}
	if len(embed.Fields) == 0 {
		t.Fatal("expected enrichment fields")
	}
	if embed.Fields[0].Value != "שדרות" {
		t.Fatalf("expected resolved area, got %q", embed.Fields[0].Value)
	}
}

func TestCategoryLabelFallbacks(t *testing.T) {
	if categoryLabel("") != defaultCategoryLabel {
		t.Fatal("empty title should use default label")
	}
	if categoryLabel("something new") != "something new" {
		t.Fatal("unknown title should pass through")
	}
}
