package verify

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"shomer-bot/internal/audit"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

var (
	ErrNoChallenge = errors.New("no pending verification")
	ErrExpired     = errors.New("verification code expired")
	ErrMismatch    = errors.New("verification code does not match")
)

// RoleGranter is the slice of the Discord client verification needs.
// *discordgo.Session satisfies it.
type RoleGranter interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type challenge struct {
	code    string
	expires time.Time
}

// Service runs the member verification flow: Begin hands the member a short
// one-time code, Confirm checks it within the TTL and grants the verified
// role. Challenges live in memory only; a restart just means asking for a
// fresh code.
type Service struct {
	audit   *audit.Logger
	logger  *zap.Logger
	ttl     time.Duration
	codeLen int
	clock   Clock

	mu      sync.Mutex
	pending map[string]challenge
}

func NewService(auditLog *audit.Logger, logger *zap.Logger, ttl time.Duration, codeLen int) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if codeLen <= 0 {
		codeLen = 6
	}
	return &Service{
		audit:   auditLog,
		logger:  logger,
		ttl:     ttl,
		codeLen: codeLen,
		clock:   realClock{},
		pending: make(map[string]challenge),
	}
}

func (s *Service) WithClock(clock Clock) {
	s.clock = clock
}

// Begin issues a fresh code for the member, replacing any previous one.
func (s *Service) Begin(guildID, userID string) (string, error) {
	code, err := randomCode(s.codeLen)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.pending[challengeKey(guildID, userID)] = challenge{
		code:    code,
		expires: s.clock.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return code, nil
}

// Confirm validates the member's code and grants the verified role. The
// challenge is consumed on success and on expiry; a mismatched code keeps it
// alive so the member can retry a typo.
func (s *Service) Confirm(ctx context.Context, session RoleGranter, guildID, userID, roleID, code string) error {
	key := challengeKey(guildID, userID)

	s.mu.Lock()
	pending, ok := s.pending[key]
	if ok && s.clock.Now().After(pending.expires) {
		delete(s.pending, key)
		s.mu.Unlock()
		return ErrExpired
	}
	if !ok {
		s.mu.Unlock()
		return ErrNoChallenge
	}
	if pending.code != code {
		s.mu.Unlock()
		return ErrMismatch
	}
	delete(s.pending, key)
	s.mu.Unlock()

	if roleID != "" {
		if err := session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
			s.logger.Warn("verified role grant failed",
				zap.String("guild_id", guildID),
				zap.String("user_id", userID),
				zap.Error(err))
			return err
		}
	}
	s.audit.Info(ctx, guildID, userID, "member_verified", "")
	return nil
}

func challengeKey(guildID, userID string) string {
	return guildID + ":" + userID
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
