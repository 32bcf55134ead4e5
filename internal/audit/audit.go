package audit

import (
	"context"
	"time"

	"shomer-bot/internal/storage"

	"go.uber.org/zap"
)

const (
	LevelInfo = "INFO"
	LevelWarn = "WARN"
	LevelCrit = "CRIT"
)

// Logger persists guild events to the store and mirrors them to the process
// log. An optional notifier forwards each entry, typically to the guild's log
// channel.
type Logger struct {
	store  *storage.Store
	logger *zap.Logger
	notify func(context.Context, storage.AuditLog)
}

func NewLogger(store *storage.Store, logger *zap.Logger) *Logger {
	return &Logger{store: store, logger: logger}
}

func (l *Logger) SetNotifier(notify func(context.Context, storage.AuditLog)) {
	l.notify = notify
}

func (l *Logger) Info(ctx context.Context, guildID, userID, event, details string) {
	l.log(ctx, LevelInfo, guildID, userID, event, details)
}

func (l *Logger) Warn(ctx context.Context, guildID, userID, event, details string) {
	l.log(ctx, LevelWarn, guildID, userID, event, details)
}

func (l *Logger) Crit(ctx context.Context, guildID, userID, event, details string) {
	l.log(ctx, LevelCrit, guildID, userID, event, details)
}

func (l *Logger) log(ctx context.Context, level, guildID, userID, event, details string) {
	entry := storage.AuditLog{
		GuildID:   guildID,
		UserID:    userID,
		Level:     level,
		Event:     event,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if l.store != nil {
		if err := l.store.AddAuditLog(ctx, entry); err != nil {
			l.logger.Warn("audit persist failed", zap.Error(err))
		}
	}
	if l.notify != nil {
		l.notify(ctx, entry)
	}
	l.logger.Info("audit",
		zap.String("level", level),
		zap.String("guild_id", guildID),
		zap.String("user_id", userID),
		zap.String("event", event),
		zap.String("details", details))
}

// StartRetention deletes audit entries older than the retention window once a
// day until the context is canceled.
func (l *Logger) StartRetention(ctx context.Context, retentionDays int) {
	if l.store == nil || retentionDays <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := l.store.CleanupAuditLogs(ctx, retentionDays); err != nil {
					l.logger.Warn("audit retention sweep failed", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
