package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shomer-bot/internal/audit"
	"shomer-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

var (
	ErrTooManyOpen = errors.New("open ticket limit reached")
	ErrNotATicket  = errors.New("channel is not an open ticket")
)

// Session is the slice of the Discord client ticket management needs.
// *discordgo.Session satisfies it.
type Session interface {
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Manager opens and closes support tickets. Each ticket gets its own text
// channel, visible to the opener and the staff.
type Manager struct {
	store   *storage.Store
	audit   *audit.Logger
	logger  *zap.Logger
	maxOpen int
	color   int
}

func NewManager(store *storage.Store, auditLog *audit.Logger, logger *zap.Logger, maxOpen, color int) *Manager {
	if maxOpen <= 0 {
		maxOpen = 3
	}
	return &Manager{store: store, audit: auditLog, logger: logger, maxOpen: maxOpen, color: color}
}

// Open creates the ticket channel and persists the ticket. The channel is
// placed under the guild's configured ticket category when one is set.
func (m *Manager) Open(ctx context.Context, session Session, guildID, userID, username, subject, categoryID string) (storage.Ticket, error) {
	open, err := m.store.CountOpenTickets(ctx, guildID, userID)
	if err != nil {
		return storage.Ticket{}, err
	}
	if open >= m.maxOpen {
		return storage.Ticket{}, ErrTooManyOpen
	}

	channel, err := session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     channelName(username),
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    subject,
		ParentID: categoryID,
	})
	if err != nil {
		return storage.Ticket{}, fmt.Errorf("create ticket channel: %w", err)
	}

	ticket := storage.Ticket{
		GuildID:   guildID,
		ChannelID: channel.ID,
		UserID:    userID,
		Subject:   subject,
		Status:    "open",
		CreatedAt: time.Now(),
	}
	id, err := m.store.CreateTicket(ctx, ticket)
	if err != nil {
		return storage.Ticket{}, err
	}
	ticket.ID = id

	if _, err := session.ChannelMessageSendEmbed(channel.ID, m.introEmbed(ticket)); err != nil {
		m.logger.Warn("ticket intro message failed",
			zap.String("channel_id", channel.ID),
			zap.Error(err))
	}
	m.audit.Info(ctx, guildID, userID, "ticket_open", subject)
	return ticket, nil
}

// Close marks the channel's open ticket as closed and renames the channel so
// staff can tell resolved tickets apart at a glance.
func (m *Manager) Close(ctx context.Context, session Session, channelID, closerID string) (storage.Ticket, error) {
	ticket, err := m.store.GetOpenTicketByChannel(ctx, channelID)
	if err != nil {
		return storage.Ticket{}, ErrNotATicket
	}
	if err := m.store.CloseTicket(ctx, ticket.ID, time.Now()); err != nil {
		return storage.Ticket{}, err
	}

	if _, err := session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: fmt.Sprintf("closed-%d", ticket.ID)}); err != nil {
		m.logger.Warn("ticket channel rename failed",
			zap.String("channel_id", channelID),
			zap.Error(err))
	}
	m.audit.Info(ctx, ticket.GuildID, closerID, "ticket_close", ticket.Subject)
	return ticket, nil
}

func (m *Manager) introEmbed(ticket storage.Ticket) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎫 פנייה חדשה",
		Description: ticket.Subject,
		Color:       m.color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "נפתחה על ידי", Value: fmt.Sprintf("<@%s>", ticket.UserID), Inline: true},
			{Name: "סגירה", Value: "`/ticket close`", Inline: true},
		},
		Timestamp: ticket.CreatedAt.Format(time.RFC3339),
	}
}

func channelName(username string) string {
	name := strings.ToLower(strings.TrimSpace(username))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if name == "" {
		return "ticket"
	}
	return "ticket-" + name
}
