package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
	"github.com/classdesk/classroom-api/internal/core/token"
)

// AuthService implements registration and login. Unknown usernames and wrong
// passwords produce the same ErrInvalidCredentials so the response shape
// never reveals whether an account exists.
type AuthService struct {
	users    ports.UserRepository
	codec    *token.Codec
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

// NewAuthService wires the authenticator. throttle and audit may be nil to
// disable login throttling and audit recording.
func NewAuthService(users ports.UserRepository, codec *token.Codec, throttle ports.LoginThrottle, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, throttle: throttle, audit: audit, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidRegistration
	}
	if in.Role == domain.RoleStudent && !in.ClassLevel.Valid() {
		return nil, domain.ErrInvalidRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Role == domain.RoleStudent {
		user.ClassLevel = in.ClassLevel
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	s.record(ports.AuditEntry{Username: created.Username, Action: ports.AuditRegister})
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, username)
		if err != nil {
			// Throttle outage must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.loginFailed(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.codec.Encode(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.record(ports.AuditEntry{Username: user.Username, Action: ports.AuditLogin})
	return tok, user, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) record(entry ports.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.OccurredAt = time.Now().UTC()
	s.audit.Record(entry)
}
