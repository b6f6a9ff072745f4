package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
	err   error // returned by every lookup when set
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.Username] = user
	return user, nil
}

func resolveWith(t *testing.T, authHeader string, codec *token.Codec, users *stubUserRepo) domain.Identity {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got domain.Identity
	mw := Identity(codec, users)
	handler := mw(func(c echo.Context) error {
		got, _ = c.Get(IdentityKey).(domain.Identity)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("resolver must never fail the request, got %d", rec.Code)
	}
	return got
}

func TestIdentity_ValidToken(t *testing.T) {
	codec := token.NewCodec([]byte("secret"), time.Hour)
	users := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: "t1", Username: "alice", Role: domain.RoleTeacher},
	}}

	raw, err := codec.Encode("alice", domain.RoleTeacher)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	ident := resolveWith(t, "Bearer "+raw, codec, users)
	if ident.IsAnonymous() {
		t.Fatalf("expected authenticated identity")
	}
	if ident.Username != "alice" || ident.Role != domain.RoleTeacher || ident.UserID != "t1" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestIdentity_AnonymousOutcomes(t *testing.T) {
	codec := token.NewCodec([]byte("secret"), time.Hour)
	users := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: "t1", Username: "alice", Role: domain.RoleTeacher},
	}}

	valid, _ := codec.Encode("alice", domain.RoleTeacher)
	otherKey := token.NewCodec([]byte("different"), time.Hour)
	forged, _ := otherKey.Encode("alice", domain.RoleTeacher)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Token " + valid},
		{"garbage token", "Bearer not-a-token"},
		{"wrong signature", "Bearer " + forged},
	}
	for _, tt := range tests {
		if ident := resolveWith(t, tt.header, codec, users); !ident.IsAnonymous() {
			t.Errorf("%s: expected anonymous, got %+v", tt.name, ident)
		}
	}
}

func TestIdentity_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "alice",
		"role": string(domain.RoleTeacher),
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec := token.NewCodec([]byte("secret"), time.Hour)
	users := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: "t1", Username: "alice", Role: domain.RoleTeacher},
	}}

	if ident := resolveWith(t, "Bearer "+raw, codec, users); !ident.IsAnonymous() {
		t.Fatalf("expired token must resolve anonymous, got %+v", ident)
	}
}

func TestIdentity_DeletedUser(t *testing.T) {
	codec := token.NewCodec([]byte("secret"), time.Hour)
	raw, _ := codec.Encode("ghost", domain.RoleTeacher)

	// Token is cryptographically valid but the subject no longer exists.
	users := &stubUserRepo{users: map[string]*domain.User{}}
	if ident := resolveWith(t, "Bearer "+raw, codec, users); !ident.IsAnonymous() {
		t.Fatalf("deleted user must resolve anonymous, got %+v", ident)
	}
}

func TestIdentity_StoreOutagePropagates(t *testing.T) {
	codec := token.NewCodec([]byte("secret"), time.Hour)
	raw, _ := codec.Encode("alice", domain.RoleTeacher)

	// An unreachable store is not the same as a deleted user: degrading to
	// anonymous here would turn an outage into a 403 for everyone.
	storeErr := errors.New("connection refused")
	users := &stubUserRepo{err: storeErr}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Identity(codec, users)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected store error to propagate")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestIdentity_FreshRoleWins(t *testing.T) {
	codec := token.NewCodec([]byte("secret"), time.Hour)
	raw, _ := codec.Encode("bob", domain.RoleTeacher)

	// Store now says student: the embedded teacher claim must not survive.
	users := &stubUserRepo{users: map[string]*domain.User{
		"bob": {ID: "s1", Username: "bob", Role: domain.RoleStudent, ClassLevel: domain.ClassEleventh},
	}}

	ident := resolveWith(t, "Bearer "+raw, codec, users)
	if ident.Role != domain.RoleStudent {
		t.Fatalf("expected store role to win, got %q", ident.Role)
	}
	if ident.ClassLevel != domain.ClassEleventh {
		t.Fatalf("class level not loaded from store: %q", ident.ClassLevel)
	}
}
