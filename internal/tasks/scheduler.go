package tasks

import (
	"context"
	"fmt"
	"time"

	"shomer-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Sender is the message-sending slice of the Discord client.
// *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Scheduler periodically scans for due reminders and delivers them to their
// origin channel. Delivered and undeliverable reminders are both marked done
// so a broken channel cannot wedge the queue.
type Scheduler struct {
	store    *storage.Store
	sender   Sender
	logger   *zap.Logger
	clock    Clock
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewScheduler(store *storage.Store, sender Sender, logger *zap.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		store:    store,
		sender:   sender,
		logger:   logger,
		clock:    realClock{},
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) WithClock(clock Clock) {
	s.clock = clock
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
	s.logger.Info("reminder scheduler started", zap.Duration("interval", s.interval))
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	due, err := s.store.ListDueReminders(ctx, s.clock.Now())
	if err != nil {
		s.logger.Warn("reminder scan failed", zap.Error(err))
		return
	}

	for _, reminder := range due {
		content := fmt.Sprintf("⏰ <@%s> %s", reminder.UserID, reminder.Message)
		if _, err := s.sender.ChannelMessageSend(reminder.ChannelID, content); err != nil {
			s.logger.Warn("reminder delivery failed",
				zap.Int64("reminder_id", reminder.ID),
				zap.String("channel_id", reminder.ChannelID),
				zap.Error(err))
		}
		if err := s.store.MarkReminderDone(ctx, reminder.ID); err != nil {
			s.logger.Warn("reminder completion failed",
				zap.Int64("reminder_id", reminder.ID),
				zap.Error(err))
		}
	}
}
