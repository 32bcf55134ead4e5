package bot

import (
	"context"
	"time"

	"shomer-bot/internal/alerts"
	"shomer-bot/internal/analytics"
	"shomer-bot/internal/audit"
	"shomer-bot/internal/config"
	"shomer-bot/internal/ratelimit"
	"shomer-bot/internal/storage"
	"shomer-bot/internal/tasks"
	"shomer-bot/internal/tickets"
	"shomer-bot/internal/verify"
	"shomer-bot/internal/weather"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg       config.Config
	logger    *zap.Logger
	store     *storage.Store
	session   *discordgo.Session
	audit     *audit.Logger
	analytics *analytics.Service
	registry  *alerts.Registry
	poller    *alerts.Poller
	weather   *weather.Client
	tickets   *tickets.Manager
	verify    *verify.Service
	scheduler *tasks.Scheduler
	limiter   *ratelimit.Limiter
}

func New(cfg config.Config, logger *zap.Logger, store *storage.Store, auditLogger *audit.Logger, analyticsService *analytics.Service, weatherClient *weather.Client) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers

	b := &Bot{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		session:   session,
		audit:     auditLogger,
		analytics: analyticsService,
		weather:   weatherClient,
	}

	b.registry = alerts.NewRegistry(store, logger)
	broadcaster := alerts.NewBroadcaster(b.registry, logger, cfg.Notifications.EmbedColors.Alert)
	b.poller = alerts.NewPoller(alerts.PollerConfig{
		FeedURL:        cfg.Alerts.FeedURL,
		Referer:        cfg.Alerts.Referer,
		UserAgent:      cfg.Alerts.UserAgent,
		Interval:       cfg.Alerts.PollInterval(),
		Cooldown:       cfg.Alerts.Cooldown(),
		Attempts:       cfg.Alerts.FetchAttempts,
		RetryStep:      cfg.Alerts.RetryStep(),
		RequestTimeout: cfg.Alerts.RequestTimeout(),
	}, b.registry, broadcaster, session, logger)

	b.tickets = tickets.NewManager(store, auditLogger, logger, cfg.Tickets.MaxOpenPerUser, cfg.Notifications.EmbedColors.Info)
	b.verify = verify.NewService(auditLogger, logger, time.Duration(cfg.Verify.CodeTTLMinutes)*time.Minute, cfg.Verify.CodeLength)
	b.scheduler = tasks.NewScheduler(store, session, logger, time.Duration(cfg.Reminders.ScanSeconds)*time.Second)
	b.limiter = ratelimit.New(5, time.Minute)

	if b.audit != nil {
		b.audit.SetNotifier(func(ctx context.Context, entry storage.AuditLog) {
			if !b.cfg.Notifications.AuditToChannel {
				return
			}
			b.notifyAudit(ctx, entry)
		})
	}

	return b, nil
}

func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return err
	}

	if err := b.registerCommands(); err != nil {
		return err
	}

	if b.cfg.Alerts.Enabled {
		b.poller.Start(ctx)
	}
	b.scheduler.Start(ctx)
	b.audit.StartRetention(ctx, b.cfg.RetentionDays)

	return nil
}

// Close stops the background loops, bounded by the context deadline, then
// closes the Discord session.
func (b *Bot) Close(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if b.cfg.Alerts.Enabled && b.poller != nil {
			b.poller.Stop()
		}
		if b.scheduler != nil {
			b.scheduler.Stop()
		}
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		b.logger.Warn("shutdown deadline reached before background loops stopped")
	}

	if b.session != nil {
		_ = b.session.Close()
	}
}

func (b *Bot) onReady(session *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("discord ready",
		zap.String("user", session.State.User.Username),
		zap.Int("guilds", len(event.Guilds)))
}

func (b *Bot) guildSettings(ctx context.Context, guildID string) storage.GuildSettings {
	defaults := storage.GuildSettings{
		GuildID:       guildID,
		LogChannel:    b.cfg.DefaultLogChannel,
		Language:      b.cfg.DefaultLanguage,
		WeatherCity:   b.cfg.Weather.DefaultCity,
		RetentionDays: b.cfg.RetentionDays,
	}

	settings, err := b.store.GetGuildSettings(ctx, guildID, defaults)
	if err != nil {
		b.logger.Warn("guild settings fallback", zap.Error(err))
		return defaults
	}
	return settings
}

func (b *Bot) guildLanguage(settings storage.GuildSettings) string {
	if settings.Language != "" {
		return settings.Language
	}
	return b.cfg.DefaultLanguage
}

func (b *Bot) notifyAudit(ctx context.Context, entry storage.AuditLog) {
	settings := b.guildSettings(ctx, entry.GuildID)
	channelID := settings.LogChannel
	if channelID == "" {
		channelID = b.cfg.DefaultLogChannel
	}
	if channelID == "" {
		return
	}
	lang := b.guildLanguage(settings)

	userValue := "<@" + entry.UserID + ">"
	if entry.UserID == "" {
		userValue = b.t(lang, "value_system")
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: b.t(lang, "field_event"), Value: entry.Event, Inline: true},
		{Name: b.t(lang, "audit_level"), Value: entry.Level, Inline: true},
		{Name: b.t(lang, "field_user"), Value: userValue, Inline: true},
	}
	if entry.Details != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: b.t(lang, "audit_details"), Value: entry.Details, Inline: false,
		})
	}
	embed := &discordgo.MessageEmbed{
		Title:     b.t(lang, "audit_title"),
		Color:     b.cfg.Notifications.EmbedColors.Info,
		Footer:    &discordgo.MessageEmbedFooter{Text: b.t(lang, "footer_brand")},
		Timestamp: entry.CreatedAt.Format(time.RFC3339),
		Fields:    fields,
	}
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		b.logger.Warn("audit channel notify failed",
			zap.String("guild_id", entry.GuildID),
			zap.String("channel_id", channelID),
			zap.Error(err))
	}
}

func (b *Bot) respond(session *discordgo.Session, interaction *discordgo.InteractionCreate, content string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
}

func (b *Bot) respondEmbed(session *discordgo.Session, interaction *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	if embed == nil {
		b.respond(session, interaction, "No response available.", ephemeral)
		return
	}
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
}
