package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
	"github.com/classdesk/classroom-api/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	codec := token.NewCodec([]byte("secret"), time.Hour)
	return NewAuthService(repo, codec, nil, nil, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw1", Role: domain.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleTeacher {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.ClassLevel != "" {
		t.Fatalf("teacher must not carry a class level, got %q", user.ClassLevel)
	}
}

func TestAuthService_Register_StudentClassLevel(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	// Students without a class level are rejected with a registration
	// error, never a credentials one.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Password: "pw2", Role: domain.RoleStudent,
	}); err != domain.ErrInvalidRegistration {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Password: "pw2", Role: domain.RoleStudent, ClassLevel: domain.ClassEleventh,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ClassLevel != domain.ClassEleventh {
		t.Fatalf("unexpected class level: %q", user.ClassLevel)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "", Password: "pw", Role: domain.RoleTeacher,
	}); err != domain.ErrInvalidRegistration {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "eve", Password: "pw", Role: "principal",
	}); err != domain.ErrInvalidRegistration {
		t.Fatalf("expected ErrInvalidRegistration for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	first, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw1", Role: domain.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw9", Role: domain.RoleStudent, ClassLevel: domain.ClassTwelfth,
	}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// First account is unaffected.
	tok, user, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil || tok == "" {
		t.Fatalf("original account broken after duplicate attempt: %v", err)
	}
	if user.ID != first.ID || user.Role != domain.RoleTeacher {
		t.Fatalf("unexpected user after duplicate attempt: %+v", user)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	codec := token.NewCodec([]byte("secret"), time.Hour)
	svc := NewAuthService(repo, codec, nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Password: "s3cret", Role: domain.RoleTeacher,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("issued token does not decode: %v", err)
	}
	if claims.Subject != "carol" || claims.Role != domain.RoleTeacher {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Password: "goodpass", Role: domain.RoleStudent, ClassLevel: domain.ClassTwelfth,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown username must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func (s *stubThrottle) TooManyAttempts(_ context.Context, username string) (bool, error) {
	return s.failures[username] >= s.limit, nil
}

func (s *stubThrottle) RecordFailure(_ context.Context, username string) error {
	s.failures[username]++
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, username string) error {
	delete(s.failures, username)
	return nil
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{failures: make(map[string]int), limit: 2}
	svc := NewAuthService(repo, token.NewCodec([]byte("secret"), time.Hour), throttle, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin", Password: "right", Role: domain.RoleTeacher,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, _, err := svc.Login(context.Background(), "erin", "wrong"); err != domain.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the correct password is refused.
	if _, _, err := svc.Login(context.Background(), "erin", "right"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
