package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected passthrough limit, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	orig := Cursor{
		Key:       "2026-03-15",
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}
	encoded := EncodeCursor(orig)

	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed.Key != orig.Key {
		t.Fatalf("key mismatch: %q vs %q", parsed.Key, orig.Key)
	}
	if !parsed.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", parsed.CreatedAt, orig.CreatedAt)
	}
	if parsed.ID != orig.ID {
		t.Fatalf("id mismatch: %s vs %s", parsed.ID, orig.ID)
	}
}

func TestCursorEmptyKeyRoundTrip(t *testing.T) {
	orig := Cursor{
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		ID:        uuid.New(),
	}
	parsed, err := ParseCursor(EncodeCursor(orig))
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed.Key != "" {
		t.Fatalf("expected empty key, got %q", parsed.Key)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if cur, err := ParseCursor("  "); err != nil || cur != nil {
		t.Fatalf("blank cursor should yield nil, got cur=%v err=%v", cur, err)
	}
	if _, err := ParseCursor("%%%not-base64%%%"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := ParseCursor("bm90LWEtY3Vyc29y"); err == nil {
		t.Fatalf("expected format error")
	}
}
