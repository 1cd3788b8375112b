package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andrejsk/placemark/internal/common"
)

func newTestCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	c, err := NewCodec(secret, "HS256", "", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret")

	tok, issued, err := c.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if issued.ID == "" {
		t.Fatal("expected non-empty jti")
	}

	cl, err := c.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cl.Subject != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", cl.Subject, "alice")
	}
	aud, err := cl.GetAudience()
	if err != nil || len(aud) != 1 || aud[0] != DefaultAudience {
		t.Fatalf("unexpected audience: %v (err=%v)", aud, err)
	}
	if !cl.ExpiresAt.After(cl.IssuedAt.Time) {
		t.Fatalf("expiry %v not after issue time %v", cl.ExpiresAt, cl.IssuedAt)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "secret")

	tok, _, err := c.Issue("u1", -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = c.Parse(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	right := newTestCodec(t, "right-secret")
	wrong := newTestCodec(t, "wrong-secret")

	tok, _, err := right.Issue("u2", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = wrong.Parse(tok)
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestParse_TamperedSignature(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "secret")

	tok, _, err := c.Issue("u3", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip one character in the signature segment.
	i := strings.LastIndex(tok, ".") + 1
	b := []byte(tok)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	_, err = c.Parse(string(b))
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestParse_WrongAudience(t *testing.T) {
	t.Parallel()

	issuer, err := NewCodec("secret", "HS256", "other-audience", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	tok, _, err := issuer.Issue("u4", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	c := newTestCodec(t, "secret")
	_, err = c.Parse(tok)
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestParse_MissingSubject(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "secret")

	tok, _, err := c.Issue("", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = c.Parse(tok)
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "k")

	_, err := c.Parse("not.a.jwt")
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestNewCodec_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec("", "HS256", "", time.Minute); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewCodec("k", "RS256", "", time.Minute); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		if _, err := NewCodec("k", alg, "", time.Minute); err != nil {
			t.Fatalf("unexpected error for %s: %v", alg, err)
		}
	}
}
