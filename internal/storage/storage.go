package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

type GuildSettings struct {
	GuildID        string
	LogChannel     string
	Language       string
	VerifyRole     string
	TicketCategory string
	WeatherCity    string
	RetentionDays  int
}

type AuditLog struct {
	ID        int64
	GuildID   string
	UserID    string
	Level     string
	Event     string
	Details   string
	CreatedAt time.Time
}

type Ticket struct {
	ID        int64
	GuildID   string
	ChannelID string
	UserID    string
	Subject   string
	Status    string
	CreatedAt time.Time
	ClosedAt  time.Time
}

type Reminder struct {
	ID        int64
	GuildID   string
	ChannelID string
	UserID    string
	Message   string
	RunAt     time.Time
	CreatedAt time.Time
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Store) Migrate() error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := migrations.ReadFile(path.Join("migrations", file))
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			if isIgnorableMigrationError(err) {
				continue
			}
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
	}
	return nil
}

func (s *Store) GetGuildSettings(ctx context.Context, guildID string, defaults GuildSettings) (GuildSettings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT log_channel, language, verify_role, ticket_category, weather_city, retention_days
		FROM guild_settings WHERE guild_id = ?`, guildID)

	result := defaults
	result.GuildID = guildID

	err := row.Scan(
		&result.LogChannel,
		&result.Language,
		&result.VerifyRole,
		&result.TicketCategory,
		&result.WeatherCity,
		&result.RetentionDays,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result, nil
		}
		return GuildSettings{}, err
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	return result, nil
}

func (s *Store) UpsertGuildSettings(ctx context.Context, settings GuildSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guild_settings (
			guild_id, log_channel, language, verify_role, ticket_category, weather_city, retention_days
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			log_channel = excluded.log_channel,
			language = excluded.language,
			verify_role = excluded.verify_role,
			ticket_category = excluded.ticket_category,
			weather_city = excluded.weather_city,
			retention_days = excluded.retention_days
	`,
		settings.GuildID,
		settings.LogChannel,
		settings.Language,
		settings.VerifyRole,
		settings.TicketCategory,
		settings.WeatherCity,
		settings.RetentionDays,
	)
	return err
}

func (s *Store) AddAlertChannel(ctx context.Context, guildID, channelID string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO alert_channels (guild_id, channel_id) VALUES (?, ?)`, guildID, channelID)
	return err
}

func (s *Store) RemoveAlertChannel(ctx context.Context, guildID, channelID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM alert_channels WHERE guild_id = ? AND channel_id = ?`, guildID, channelID)
	return err
}

func (s *Store) ListAlertChannels(ctx context.Context, guildID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT channel_id FROM alert_channels WHERE guild_id = ? ORDER BY channel_id`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		channels = append(channels, id)
	}
	return channels, rows.Err()
}

func (s *Store) ListAllAlertChannels(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT guild_id, channel_id FROM alert_channels ORDER BY guild_id, channel_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var guildID, channelID string
		if err := rows.Scan(&guildID, &channelID); err != nil {
			return nil, err
		}
		result[guildID] = append(result[guildID], channelID)
	}
	return result, rows.Err()
}

func (s *Store) AddAuditLog(ctx context.Context, log AuditLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (guild_id, user_id, level, event, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, log.GuildID, log.UserID, log.Level, log.Event, log.Details, log.CreatedAt.Unix())
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, guildID string, since time.Time) ([]AuditLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, user_id, level, event, details, created_at
		FROM audit_logs
		WHERE guild_id = ? AND created_at >= ?
		ORDER BY created_at DESC
	`, guildID, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []AuditLog
	for rows.Next() {
		var log AuditLog
		var created int64
		if err := rows.Scan(&log.ID, &log.GuildID, &log.UserID, &log.Level, &log.Event, &log.Details, &created); err != nil {
			return nil, err
		}
		log.CreatedAt = time.Unix(created, 0)
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (s *Store) CleanupAuditLogs(ctx context.Context, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	_, err := s.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < ?`, cutoff.Unix())
	return err
}

func (s *Store) CreateTicket(ctx context.Context, ticket Ticket) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tickets (guild_id, channel_id, user_id, subject, status, created_at, closed_at)
		VALUES (?, ?, ?, ?, 'open', ?, 0)
	`, ticket.GuildID, ticket.ChannelID, ticket.UserID, ticket.Subject, ticket.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetOpenTicketByChannel(ctx context.Context, channelID string) (Ticket, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, guild_id, channel_id, user_id, subject, status, created_at, closed_at
		FROM tickets WHERE channel_id = ? AND status = 'open'
	`, channelID)

	var ticket Ticket
	var created, closed int64
	err := row.Scan(&ticket.ID, &ticket.GuildID, &ticket.ChannelID, &ticket.UserID, &ticket.Subject, &ticket.Status, &created, &closed)
	if err != nil {
		return Ticket{}, err
	}
	ticket.CreatedAt = time.Unix(created, 0)
	if closed > 0 {
		ticket.ClosedAt = time.Unix(closed, 0)
	}
	return ticket, nil
}

func (s *Store) CloseTicket(ctx context.Context, id int64, closedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tickets SET status = 'closed', closed_at = ? WHERE id = ? AND status = 'open'
	`, closedAt.Unix(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("ticket not open")
	}
	return nil
}

func (s *Store) CountOpenTickets(ctx context.Context, guildID, userID string) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE guild_id = ? AND user_id = ? AND status = 'open'`, guildID, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) AddReminder(ctx context.Context, reminder Reminder) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (guild_id, channel_id, user_id, message, run_at, created_at, done)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`, reminder.GuildID, reminder.ChannelID, reminder.UserID, reminder.Message, reminder.RunAt.Unix(), reminder.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) ListDueReminders(ctx context.Context, now time.Time) ([]Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, channel_id, user_id, message, run_at, created_at
		FROM reminders WHERE done = 0 AND run_at <= ?
		ORDER BY run_at
	`, now.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

func (s *Store) ListReminders(ctx context.Context, guildID string) ([]Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, channel_id, user_id, message, run_at, created_at
		FROM reminders WHERE done = 0 AND guild_id = ?
		ORDER BY run_at
	`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

func (s *Store) MarkReminderDone(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE reminders SET done = 1 WHERE id = ?`, id)
	return err
}

func (s *Store) DeleteReminder(ctx context.Context, guildID string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ? AND guild_id = ? AND done = 0`, id, guildID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("reminder not found")
	}
	return nil
}

func scanReminders(rows *sql.Rows) ([]Reminder, error) {
	var reminders []Reminder
	for rows.Next() {
		var reminder Reminder
		var runAt, created int64
		if err := rows.Scan(&reminder.ID, &reminder.GuildID, &reminder.ChannelID, &reminder.UserID, &reminder.Message, &runAt, &created); err != nil {
			return nil, err
		}
		reminder.RunAt = time.Unix(runAt, 0)
		reminder.CreatedAt = time.Unix(created, 0)
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func isIgnorableMigrationError(err error) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "duplicate column name") || strings.Contains(message, "already exists")
}
