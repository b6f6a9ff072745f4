package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

func TestCodec_EncodeDecode_Roundtrip(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)

	raw, err := c.Encode("alice", domain.RoleTeacher)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	claims, err := c.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.Role != domain.RoleTeacher {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", claims.ExpiresAt)
	}
}

func TestCodec_Decode_Expired(t *testing.T) {
	// Sign an already-expired token with the right key: signature is valid,
	// expiry alone must reject it.
	claims := jwt.MapClaims{
		"sub":  "alice",
		"role": string(domain.RoleStudent),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c := NewCodec([]byte("secret"), time.Hour)
	if _, err := c.Decode(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Decode_TamperedSignature(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)
	raw, err := c.Encode("bob", domain.RoleStudent)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Flip one bit in the signature segment.
	i := strings.LastIndex(raw, ".") + 1
	b := []byte(raw)
	b[i] ^= 0x01
	if _, err := c.Decode(string(b)); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Decode_WrongKey(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)
	raw, err := c.Encode("bob", domain.RoleStudent)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	other := NewCodec([]byte("different"), time.Hour)
	if _, err := other.Decode(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Decode_Malformed(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := c.Decode(raw); err != ErrInvalidToken {
			t.Fatalf("decode(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestCodec_Decode_UnknownRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "mallory",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c := NewCodec([]byte("secret"), time.Hour)
	if _, err := c.Decode(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
