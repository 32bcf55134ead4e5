package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shomer-bot/internal/alerts"
	"shomer-bot/internal/audit"
	"shomer-bot/internal/storage"
	"shomer-bot/internal/tickets"
	"shomer-bot/internal/verify"
	"shomer-bot/internal/weather"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) onInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	if interaction.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx := context.Background()
	data := interaction.ApplicationCommandData()

	if interaction.GuildID == "" {
		lang := b.cfg.DefaultLanguage
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "error_title"), b.t(lang, "error_only_guild"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	settings := b.guildSettings(ctx, interaction.GuildID)
	options := optionMap(data.Options)

	switch data.Name {
	case "alerts":
		b.handleAlertsCommand(ctx, session, interaction, settings, options)
	case "setup":
		b.handleSetupCommand(ctx, session, interaction, settings, options)
	case "weather":
		b.handleWeatherCommand(ctx, session, interaction, settings, options)
	case "remind":
		b.handleRemindCommand(ctx, session, interaction, settings, options)
	case "ticket":
		b.handleTicketCommand(ctx, session, interaction, settings, options)
	case "verify":
		b.handleVerifyCommand(ctx, session, interaction, settings, options)
	case "report":
		b.handleReportCommand(ctx, session, interaction, settings, options)
	}
}

func (b *Bot) handleAlertsCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)
	action := stringOption(options, "action")

	channelID := interaction.ChannelID
	if opt, ok := options["channel"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			channelID = channel.ID
		}
	}

	switch action {
	case "add":
		if err := b.registry.Add(ctx, interaction.GuildID, channelID); err != nil {
			b.logger.Warn("alert channel add failed", zap.Error(err))
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Info(ctx, interaction.GuildID, interactionUserID(interaction), "alert_channel_add", channelID)
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "field_channel"), Value: "<#" + channelID + ">", Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "alerts_added"), b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "remove":
		if err := b.registry.Remove(ctx, interaction.GuildID, channelID); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.audit.Info(ctx, interaction.GuildID, interactionUserID(interaction), "alert_channel_remove", channelID)
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "field_channel"), Value: "<#" + channelID + ">", Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "alerts_removed"), b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "list":
		channels, err := b.registry.List(ctx, interaction.GuildID)
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if len(channels) == 0 {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "alerts_none"), b.cfg.Notifications.EmbedColors.Info, nil), true)
			return
		}
		lines := make([]string, 0, len(channels))
		for _, id := range channels {
			lines = append(lines, "<#"+id+">")
		}
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "field_channels"), Value: strings.Join(lines, "\n"), Inline: false}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "alerts_list"), b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "test":
		channels, err := b.registry.List(ctx, interaction.GuildID)
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if len(channels) == 0 {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "alerts_none"), b.cfg.Notifications.EmbedColors.Info, nil), true)
			return
		}

		sample := alerts.Alert{
			AlertDate: time.Now().Format("2006-01-02 15:04:05"),
			Title:     "ירי רקטות וטילים",
			Data:      "אשקלון",
		}
		embed := alerts.BuildAlertEmbed(sample, time.Now(), b.cfg.Notifications.EmbedColors.Alert)

		lines := make([]string, 0, len(channels))
		delivered := 0
		for _, id := range channels {
			if _, err := session.ChannelMessageSendEmbed(id, embed); err != nil {
				b.logger.Warn("test alert delivery failed",
					zap.String("guild_id", interaction.GuildID),
					zap.String("channel_id", id),
					zap.Error(err))
				lines = append(lines, "❌ <#"+id+">")
				continue
			}
			delivered++
			lines = append(lines, "✅ <#"+id+">")
		}

		b.audit.Info(ctx, interaction.GuildID, interactionUserID(interaction), "alert_test", fmt.Sprintf("%d/%d", delivered, len(channels)))
		fields := []*discordgo.MessageEmbedField{
			{Name: b.t(lang, "field_delivered"), Value: fmt.Sprintf("%d/%d", delivered, len(channels)), Inline: true},
			{Name: b.t(lang, "field_channels"), Value: strings.Join(lines, "\n"), Inline: false},
		}
		color := b.cfg.Notifications.EmbedColors.Info
		if delivered < len(channels) {
			color = b.cfg.Notifications.EmbedColors.Error
		}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "alerts_test_sent"), color, fields), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "alerts_title"), b.t(lang, "error_unknown"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}

func (b *Bot) handleSetupCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)

	var fields []*discordgo.MessageEmbedField
	if opt, ok := options["logs"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			settings.LogChannel = channel.ID
			fields = append(fields, &discordgo.MessageEmbedField{Name: b.t(lang, "field_channel"), Value: "<#" + channel.ID + ">", Inline: true})
		}
	}
	if opt, ok := options["verify_role"]; ok {
		if role := opt.RoleValue(session, interaction.GuildID); role != nil {
			settings.VerifyRole = role.ID
			fields = append(fields, &discordgo.MessageEmbedField{Name: b.t(lang, "field_role"), Value: "<@&" + role.ID + ">", Inline: true})
		}
	}
	if opt, ok := options["ticket_category"]; ok {
		if channel := opt.ChannelValue(session); channel != nil {
			settings.TicketCategory = channel.ID
			fields = append(fields, &discordgo.MessageEmbedField{Name: b.t(lang, "field_category"), Value: channel.Name, Inline: true})
		}
	}
	if opt, ok := options["weather_city"]; ok {
		settings.WeatherCity = opt.StringValue()
		fields = append(fields, &discordgo.MessageEmbedField{Name: b.t(lang, "field_city"), Value: settings.WeatherCity, Inline: true})
	}
	if opt, ok := options["language"]; ok {
		settings.Language = opt.StringValue()
		lang = settings.Language
		fields = append(fields, &discordgo.MessageEmbedField{Name: b.t(lang, "field_language"), Value: settings.Language, Inline: true})
	}

	if len(fields) == 0 {
		current := []*discordgo.MessageEmbedField{
			{Name: b.t(lang, "field_channel"), Value: channelMention(settings.LogChannel, b.t(lang, "value_not_set")), Inline: true},
			{Name: b.t(lang, "field_role"), Value: roleMention(settings.VerifyRole, b.t(lang, "value_not_set")), Inline: true},
			{Name: b.t(lang, "field_city"), Value: settings.WeatherCity, Inline: true},
			{Name: b.t(lang, "field_language"), Value: b.guildLanguage(settings), Inline: true},
		}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "setup_title"), b.t(lang, "setup_current"), b.cfg.Notifications.EmbedColors.Info, current), true)
		return
	}

	if err := b.store.UpsertGuildSettings(ctx, settings); err != nil {
		b.logger.Warn("setup update failed", zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "setup_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	b.audit.Info(ctx, interaction.GuildID, interactionUserID(interaction), "setup_update", "")
	b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "setup_title"), b.t(lang, "setup_updated"), b.cfg.Notifications.EmbedColors.Info, fields), true)
}

func (b *Bot) handleWeatherCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)
	if !b.cfg.Weather.Enabled {
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "weather_title"), b.t(lang, "weather_disabled"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	if !b.limiter.Allow(interaction.GuildID+":"+interactionUserID(interaction), time.Now()) {
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "weather_title"), b.t(lang, "error_rate_limited"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	city := stringOption(options, "city")
	if city == "" {
		city = settings.WeatherCity
	}
	if city == "" {
		city = b.cfg.Weather.DefaultCity
	}

	conditions, err := b.weather.Current(ctx, city)
	if errors.Is(err, weather.ErrCityNotFound) {
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "weather_title"), b.t(lang, "weather_city_not_found"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}
	if err != nil {
		b.logger.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "weather_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: b.t(lang, "field_city"), Value: fmt.Sprintf("%s, %s", conditions.City, conditions.Country), Inline: true},
		{Name: b.t(lang, "field_temp"), Value: fmt.Sprintf("%.1f°C", conditions.TemperatureC), Inline: true},
		{Name: b.t(lang, "field_wind"), Value: fmt.Sprintf("%.1f km/h", conditions.WindKmh), Inline: true},
		{Name: b.t(lang, "field_conditions"), Value: conditions.Description, Inline: true},
	}
	b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "weather_title"), "", b.cfg.Notifications.EmbedColors.Info, fields), false)
}

func (b *Bot) handleRemindCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)
	userID := interactionUserID(interaction)
	action := stringOption(options, "action")

	switch action {
	case "add":
		minutes := int64(0)
		if opt, ok := options["minutes"]; ok {
			minutes = opt.IntValue()
		}
		message := stringOption(options, "message")
		if minutes <= 0 || message == "" {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "error_missing_option"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}

		existing, err := b.store.ListReminders(ctx, interaction.GuildID)
		if err == nil {
			mine := 0
			for _, reminder := range existing {
				if reminder.UserID == userID {
					mine++
				}
			}
			if b.cfg.Reminders.MaxPerUser > 0 && mine >= b.cfg.Reminders.MaxPerUser {
				b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "remind_limit"), b.cfg.Notifications.EmbedColors.Error, nil), true)
				return
			}
		}

		runAt := time.Now().Add(time.Duration(minutes) * time.Minute)
		reminder := storage.Reminder{
			GuildID:   interaction.GuildID,
			ChannelID: interaction.ChannelID,
			UserID:    userID,
			Message:   message,
			RunAt:     runAt,
			CreatedAt: time.Now(),
		}
		id, err := b.store.AddReminder(ctx, reminder)
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}

		fields := []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("%d", id), Inline: true},
			{Name: b.t(lang, "field_when"), Value: fmt.Sprintf("<t:%d:R>", runAt.Unix()), Inline: true},
		}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "remind_added"), b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "list":
		reminders, err := b.store.ListReminders(ctx, interaction.GuildID)
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		lines := make([]string, 0, len(reminders))
		for _, reminder := range reminders {
			if reminder.UserID != userID {
				continue
			}
			lines = append(lines, fmt.Sprintf("`%d` <t:%d:R> %s", reminder.ID, reminder.RunAt.Unix(), reminder.Message))
		}
		if len(lines) == 0 {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "remind_none"), b.cfg.Notifications.EmbedColors.Info, nil), true)
			return
		}
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "remind_list"), Value: strings.Join(lines, "\n"), Inline: false}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), "", b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "cancel":
		id := int64(0)
		if opt, ok := options["id"]; ok {
			id = opt.IntValue()
		}
		if id <= 0 {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "error_missing_option"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if err := b.store.DeleteReminder(ctx, interaction.GuildID, id); err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "remind_canceled"), b.cfg.Notifications.EmbedColors.Info, nil), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "remind_title"), b.t(lang, "error_unknown"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}

func (b *Bot) handleTicketCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)
	action := stringOption(options, "action")
	userID := interactionUserID(interaction)

	switch action {
	case "open":
		subject := stringOption(options, "subject")
		if subject == "" {
			subject = b.t(lang, "ticket_default_subject")
		}
		username := ""
		if interaction.Member != nil && interaction.Member.User != nil {
			username = interaction.Member.User.Username
		}
		ticket, err := b.tickets.Open(ctx, session, interaction.GuildID, userID, username, subject, settings.TicketCategory)
		if errors.Is(err, tickets.ErrTooManyOpen) {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "ticket_limit"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if err != nil {
			b.logger.Warn("ticket open failed", zap.Error(err))
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "field_channel"), Value: "<#" + ticket.ChannelID + ">", Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "ticket_opened"), b.cfg.Notifications.EmbedColors.Info, fields), true)
	case "close":
		ticket, err := b.tickets.Close(ctx, session, interaction.ChannelID, userID)
		if errors.Is(err, tickets.ErrNotATicket) {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "ticket_not_ticket"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "field_subject"), Value: ticket.Subject, Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "ticket_closed"), b.cfg.Notifications.EmbedColors.Info, fields), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "ticket_title"), b.t(lang, "error_unknown"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	}
}

func (b *Bot) handleVerifyCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)
	userID := interactionUserID(interaction)
	code := stringOption(options, "code")

	if code == "" {
		if !b.limiter.Allow(interaction.GuildID+":"+userID, time.Now()) {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "error_rate_limited"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		issued, err := b.verify.Begin(interaction.GuildID, userID)
		if err != nil {
			b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
			return
		}
		fields := []*discordgo.MessageEmbedField{{Name: b.t(lang, "field_code"), Value: "`" + issued + "`", Inline: true}}
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "verify_code_sent"), b.cfg.Notifications.EmbedColors.Info, fields), true)
		return
	}

	err := b.verify.Confirm(ctx, session, interaction.GuildID, userID, settings.VerifyRole, strings.ToUpper(strings.TrimSpace(code)))
	switch {
	case errors.Is(err, verify.ErrNoChallenge):
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "verify_none"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	case errors.Is(err, verify.ErrExpired):
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "verify_expired"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	case errors.Is(err, verify.ErrMismatch):
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "verify_mismatch"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	case err != nil:
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
	default:
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "verify_title"), b.t(lang, "verify_done"), b.cfg.Notifications.EmbedColors.Info, nil), true)
	}
}

func (b *Bot) handleReportCommand(ctx context.Context, session *discordgo.Session, interaction *discordgo.InteractionCreate, settings storage.GuildSettings, options map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	lang := b.guildLanguage(settings)

	period := stringOption(options, "period")
	since := time.Now().Add(-24 * time.Hour)
	if period == "week" {
		since = time.Now().Add(-7 * 24 * time.Hour)
	}

	report, err := b.analytics.Report(ctx, interaction.GuildID, since)
	if err != nil {
		b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "report_title"), b.t(lang, "error_failed"), b.cfg.Notifications.EmbedColors.Error, nil), true)
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: b.t(lang, "field_total"), Value: fmt.Sprintf("%d", report.Total), Inline: true},
		{Name: b.t(lang, "field_info"), Value: fmt.Sprintf("%d", report.ByLevel[audit.LevelInfo]), Inline: true},
		{Name: b.t(lang, "field_warn"), Value: fmt.Sprintf("%d", report.ByLevel[audit.LevelWarn]), Inline: true},
		{Name: b.t(lang, "field_crit"), Value: fmt.Sprintf("%d", report.ByLevel[audit.LevelCrit]), Inline: true},
	}
	if len(report.TopEvents) > 0 {
		lines := make([]string, 0, len(report.TopEvents))
		for _, event := range report.TopEvents {
			lines = append(lines, fmt.Sprintf("%s: %d", event.Event, event.Count))
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: b.t(lang, "field_top_events"), Value: strings.Join(lines, "\n"), Inline: false})
	}
	b.respondEmbed(session, interaction, b.commandEmbed(b.t(lang, "report_title"), b.t(lang, "report_desc"), b.cfg.Notifications.EmbedColors.Info, fields), true)
}

func (b *Bot) commandEmbed(title, description string, color int, fields []*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields:      fields,
	}
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := options[name]; ok && opt.Type == discordgo.ApplicationCommandOptionString {
		return opt.StringValue()
	}
	return ""
}

func interactionUserID(interaction *discordgo.InteractionCreate) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}
	return ""
}

func channelMention(id, fallback string) string {
	if id == "" {
		return fallback
	}
	return "<#" + id + ">"
}

func roleMention(id, fallback string) string {
	if id == "" {
		return fallback
	}
	return "<@&" + id + ">"
}
