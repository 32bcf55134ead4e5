package alerts

import (
	"context"

	"shomer-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// ChannelResolver is the slice of the Discord client the registry needs:
// turn a channel ID into a channel handle or fail. *discordgo.Session
// satisfies it.
type ChannelResolver interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Registry holds the per-guild lists of alert destination channels, persisted
// in the settings store.
type Registry struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewRegistry(store *storage.Store, logger *zap.Logger) *Registry {
	return &Registry{store: store, logger: logger}
}

// Add registers a destination channel for a guild. Adding an existing
// channel is a no-op.
func (r *Registry) Add(ctx context.Context, guildID, channelID string) error {
	return r.store.AddAlertChannel(ctx, guildID, channelID)
}

// Remove drops a destination channel. Removing an absent channel is a no-op.
func (r *Registry) Remove(ctx context.Context, guildID, channelID string) error {
	return r.store.RemoveAlertChannel(ctx, guildID, channelID)
}

func (r *Registry) List(ctx context.Context, guildID string) ([]string, error) {
	return r.store.ListAlertChannels(ctx, guildID)
}

// ListValid resolves every configured channel through the live client and
// returns the per-guild map of channels that are still reachable and
// text-capable. Channels that fail to resolve are pruned from the persisted
// lists; a single bad channel never aborts validation of the rest.
func (r *Registry) ListValid(ctx context.Context, client ChannelResolver) (map[string][]string, error) {
	all, err := r.store.ListAllAlertChannels(ctx)
	if err != nil {
		return nil, err
	}

	valid := make(map[string][]string)
	for guildID, channels := range all {
		for _, channelID := range channels {
			channel, err := client.Channel(channelID)
			if err != nil || channel == nil || !textCapable(channel) {
				r.logger.Warn("pruning unreachable alert channel",
					zap.String("guild_id", guildID),
					zap.String("channel_id", channelID),
					zap.Error(err))
				if removeErr := r.store.RemoveAlertChannel(ctx, guildID, channelID); removeErr != nil {
					r.logger.Warn("alert channel prune failed",
						zap.String("guild_id", guildID),
						zap.String("channel_id", channelID),
						zap.Error(removeErr))
				}
				continue
			}
			valid[guildID] = append(valid[guildID], channelID)
		}
	}
	return valid, nil
}

func textCapable(channel *discordgo.Channel) bool {
	return channel.Type == discordgo.ChannelTypeGuildText || channel.Type == discordgo.ChannelTypeGuildNews
}
