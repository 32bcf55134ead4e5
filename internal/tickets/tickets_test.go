package tickets

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shomer-bot/internal/audit"
	"shomer-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type fakeSession struct {
	nextID    int
	created   []discordgo.GuildChannelCreateData
	renamed   map[string]string
	embeds    []string
	createErr error
}

func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	f.created = append(f.created, data)
	return &discordgo.Channel{ID: fmt.Sprintf("ch-%d", f.nextID), Type: data.Type}, nil
}

func (f *fakeSession) ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.renamed == nil {
		f.renamed = make(map[string]string)
	}
	f.renamed[channelID] = data.Name
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.embeds = append(f.embeds, channelID)
	return &discordgo.Message{}, nil
}

func newTestManager(t *testing.T, maxOpen int) (*Manager, *storage.Store) {
	t.Helper()
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	auditLog := audit.NewLogger(store, zap.NewNop())
	return NewManager(store, auditLog, zap.NewNop(), maxOpen, 0x3B82F6), store
}

func TestOpenCreatesChannelAndPersists(t *testing.T) {
	manager, store := newTestManager(t, 3)
	session := &fakeSession{}
	ctx := context.Background()

	ticket, err := manager.Open(ctx, session, "g1", "u1", "Dana Cohen", "cannot join voice", "cat-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if ticket.ID == 0 || ticket.ChannelID == "" {
		t.Fatalf("ticket not fully populated: %+v", ticket)
	}
	if len(session.created) != 1 || session.created[0].Name != "ticket-dana-cohen" {
		t.Fatalf("unexpected channel creation: %+v", session.created)
	}
	if session.created[0].ParentID != "cat-1" {
		t.Fatalf("ticket channel not placed under category: %+v", session.created[0])
	}
	if len(session.embeds) != 1 {
		t.Fatal("intro embed not sent")
	}

	open, err := store.CountOpenTickets(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if open != 1 {
		t.Fatalf("expected 1 open ticket, got %d", open)
	}
}

func TestOpenEnforcesLimit(t *testing.T) {
	manager, _ := newTestManager(t, 1)
	session := &fakeSession{}
	ctx := context.Background()

	if _, err := manager.Open(ctx, session, "g1", "u1", "dana", "first", ""); err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err := manager.Open(ctx, session, "g1", "u1", "dana", "second", "")
	if !errors.Is(err, ErrTooManyOpen) {
		t.Fatalf("expected ErrTooManyOpen, got %v", err)
	}
}

func TestCloseLifecycle(t *testing.T) {
	manager, store := newTestManager(t, 3)
	session := &fakeSession{}
	ctx := context.Background()

	ticket, err := manager.Open(ctx, session, "g1", "u1", "dana", "subject", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	closed, err := manager.Close(ctx, session, ticket.ChannelID, "mod-1")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.ID != ticket.ID {
		t.Fatalf("closed wrong ticket: %+v", closed)
	}
	if session.renamed[ticket.ChannelID] == "" {
		t.Fatal("ticket channel not renamed on close")
	}

	// Closing again fails: the channel no longer holds an open ticket.
	if _, err := manager.Close(ctx, session, ticket.ChannelID, "mod-1"); !errors.Is(err, ErrNotATicket) {
		t.Fatalf("expected ErrNotATicket, got %v", err)
	}

	open, err := store.CountOpenTickets(ctx, "g1", "u1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if open != 0 {
		t.Fatalf("expected 0 open tickets, got %d", open)
	}
}

func TestCloseUnknownChannel(t *testing.T) {
	manager, _ := newTestManager(t, 3)
	if _, err := manager.Close(context.Background(), &fakeSession{}, "random", "u1"); !errors.Is(err, ErrNotATicket) {
		t.Fatalf("expected ErrNotATicket, got %v", err)
	}
}
