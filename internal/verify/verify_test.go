package verify

import (
	"context"
	"errors"
	"testing"
	"time"

	"shomer-bot/internal/audit"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type fakeGranter struct {
	granted []string
	err     error
}

func (f *fakeGranter) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	f.granted = append(f.granted, guildID+":"+userID+":"+roleID)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	service := NewService(audit.NewLogger(nil, zap.NewNop()), zap.NewNop(), 10*time.Minute, 6)
	clock := &fakeClock{now: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)}
	service.WithClock(clock)
	return service, clock
}

func TestVerifyHappyPath(t *testing.T) {
	service, _ := newTestService(t)
	granter := &fakeGranter{}
	ctx := context.Background()

	code, err := service.Begin("g1", "u1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("unexpected code length: %q", code)
	}

	if err := service.Confirm(ctx, granter, "g1", "u1", "role-1", code); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(granter.granted) != 1 || granter.granted[0] != "g1:u1:role-1" {
		t.Fatalf("role not granted: %v", granter.granted)
	}

	// The challenge is consumed.
	if err := service.Confirm(ctx, granter, "g1", "u1", "role-1", code); !errors.Is(err, ErrNoChallenge) {
		t.Fatalf("expected ErrNoChallenge, got %v", err)
	}
}

func TestVerifyExpiry(t *testing.T) {
	service, clock := newTestService(t)
	granter := &fakeGranter{}

	code, err := service.Begin("g1", "u1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	clock.now = clock.now.Add(11 * time.Minute)
	if err := service.Confirm(context.Background(), granter, "g1", "u1", "role-1", code); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if len(granter.granted) != 0 {
		t.Fatal("expired challenge must not grant the role")
	}
}

func TestVerifyMismatchAllowsRetry(t *testing.T) {
	service, _ := newTestService(t)
	granter := &fakeGranter{}
	ctx := context.Background()

	code, err := service.Begin("g1", "u1")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := service.Confirm(ctx, granter, "g1", "u1", "role-1", "WRONG1"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	// A typo does not burn the challenge.
	if err := service.Confirm(ctx, granter, "g1", "u1", "role-1", code); err != nil {
		t.Fatalf("retry confirm: %v", err)
	}
}

func TestVerifyNoChallenge(t *testing.T) {
	service, _ := newTestService(t)
	err := service.Confirm(context.Background(), &fakeGranter{}, "g1", "stranger", "role-1", "ABC123")
	if !errors.Is(err, ErrNoChallenge) {
		t.Fatalf("expected ErrNoChallenge, got %v", err)
	}
}
