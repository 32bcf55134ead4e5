package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Sender is the sending slice of the Discord client. *discordgo.Session
// satisfies it.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Client combines what broadcasting needs from Discord: resolve channels and
// send embeds.
type Client interface {
	ChannelResolver
	Sender
}

// Outcome records one delivery attempt to one channel.
type Outcome struct {
	GuildID   string
	ChannelID string
	Err       error
}

type Broadcaster struct {
	registry *Registry
	logger   *zap.Logger
	color    int

	// Last successfully loaded channel lists. A store failure mid-incident
	// must not silence the broadcast, so delivery falls back to these.
	lastTargets map[string][]string
}

func NewBroadcaster(registry *Registry, logger *zap.Logger, color int) *Broadcaster {
	return &Broadcaster{registry: registry, logger: logger, color: color}
}

// Broadcast renders the alert once and delivers it to every valid destination
// channel across every guild. Each send is attempted exactly once; a failure
// on one channel never affects the others. The collected outcomes let callers
// assert on aggregate delivery results. Broadcast is called from the single
// poll goroutine only.
func (b *Broadcaster) Broadcast(ctx context.Context, alert Alert, received time.Time, client Client) []Outcome {
	embed := BuildAlertEmbed(alert, received, b.color)

	targets, err := b.registry.ListValid(ctx, client)
	if err != nil {
		if b.lastTargets == nil {
			b.logger.Error("alert channel validation failed, no previous lists to fall back to", zap.Error(err))
			return nil
		}
		b.logger.Error("alert channel validation failed, using last loaded lists", zap.Error(err))
		targets = b.lastTargets
	} else {
		b.lastTargets = targets
	}

	var outcomes []Outcome
	delivered := 0
	guildsReached := make(map[string]struct{})
	for guildID, channels := range targets {
		for _, channelID := range channels {
			_, sendErr := client.ChannelMessageSendEmbed(channelID, embed)
			outcomes = append(outcomes, Outcome{GuildID: guildID, ChannelID: channelID, Err: sendErr})
			if sendErr != nil {
				b.logger.Warn("alert delivery failed",
					zap.String("guild_id", guildID),
					zap.String("channel_id", channelID),
					zap.Error(sendErr))
				continue
			}
			delivered++
			guildsReached[guildID] = struct{}{}
		}
	}

	b.logger.Info("alert broadcast",
		zap.String("key", alert.Key()),
		zap.Int("targets", len(outcomes)),
		zap.Int("delivered", delivered),
		zap.Int("guilds", len(guildsReached)))
	return outcomes
}

// Known feed categories mapped to display labels.
var categoryLabels = map[string]string{
	"ירי רקטות וטילים":    "🚀 ירי רקטות וטילים",
	"חדירת כלי טיס עוין":  "✈️ חדירת כלי טיס עוין",
	"חדירת מחבלים":        "⚠️ חדירת מחבלים",
	"רעידת אדמה":          "🌍 רעידת אדמה",
	"אירוע חומרים מסוכנים": "☣️ אירוע חומרים מסוכנים",
}

const defaultCategoryLabel = "🔴 צבע אדום"

func categoryLabel(title string) string {
	if label, ok := categoryLabels[title]; ok {
		return label
	}
	if title != "" {
		return title
	}
	return defaultCategoryLabel
}

// BuildAlertEmbed renders the single notification payload reused for every
// recipient channel.
func BuildAlertEmbed(alert Alert, received time.Time, color int) *discordgo.MessageEmbed {
	location := Resolve(string(alert.Data))

	fields := []*discordgo.MessageEmbedField{
		{Name: "אזור", Value: location.Name, Inline: true},
		{Name: "נפה", Value: location.District, Inline: true},
		{Name: "זמן מיגון", Value: formatShelterTime(location.ShelterSeconds), Inline: true},
	}
	if location.Population > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "אוכלוסייה", Value: fmt.Sprintf("כ-%d תושבים", location.Population), Inline: true,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "מפה", Value: location.MapLink, Inline: false,
	})

	return &discordgo.MessageEmbed{
		Title:       categoryLabel(alert.Title),
		Description: "היכנסו למרחב מוגן ושהו בו 10 דקות",
		Color:       color,
		Timestamp:   alert.Date(received).Format(time.RFC3339),
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "פיקוד העורף"},
	}
}

func formatShelterTime(seconds int) string {
	if seconds <= 0 {
		return "מיידי"
	}
	return fmt.Sprintf("%d שניות", seconds)
}
