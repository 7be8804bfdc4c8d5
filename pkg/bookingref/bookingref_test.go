package bookingref

import (
	"strings"
	"testing"
	"time"

	apperrors "canteen/pkg/errors"
)

var (
	testHashKey  = []byte("0123456789abcdef0123456789abcdef")
	testBlockKey = []byte("abcdef0123456789")
)

func newCodec(legacy bool) *Codec {
	return New(testHashKey, testBlockKey, time.Hour, legacy)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	c := newCodec(false)
	for _, id := range []string{"B-1001", "booking_42", "X", strings.Repeat("a", 64)} {
		token, err := c.Seal(id)
		if err != nil {
			t.Fatalf("Seal(%q) error: %v", id, err)
		}
		if len(id) >= 4 && strings.Contains(token, id) {
			t.Errorf("sealed token %q leaks id %q", token, id)
		}
		got, err := c.Open(token)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		if got != id {
			t.Errorf("Open(Seal(%q)) = %q", id, got)
		}
	}
}

func TestSeal_SignOnly(t *testing.T) {
	c := New(testHashKey, nil, time.Hour, false)
	token, err := c.Seal("B-1001")
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	got, err := c.Open(token)
	if err != nil || got != "B-1001" {
		t.Errorf("Open() = %q, %v", got, err)
	}
}

func TestOpen_Tampered(t *testing.T) {
	c := newCodec(false)
	token, err := c.Seal("B-1001")
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	b := []byte(token)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}

	if _, err := c.Open(string(b)); err == nil {
		t.Error("Open() accepted a tampered token")
	}

	other := New([]byte("ffffffffffffffffffffffffffffffff"), testBlockKey, time.Hour, false)
	if _, err := other.Open(token); err == nil {
		t.Error("Open() accepted a token sealed with another key")
	}
}

func TestSeal_RejectsInvalidID(t *testing.T) {
	c := newCodec(false)
	for _, id := range []string{"", "has space", "../etc", strings.Repeat("a", 65)} {
		if _, err := c.Seal(id); err == nil {
			t.Errorf("Seal(%q) should fail", id)
		}
	}
}

func TestLegacy_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "B-1001", "ünïcödé", "a/b+c=d", "\x00\xff"} {
		got, err := DecodeLegacy(EncodeLegacy(s))
		if err != nil {
			t.Fatalf("DecodeLegacy() error for %q: %v", s, err)
		}
		if got != s {
			t.Errorf("DecodeLegacy(EncodeLegacy(%q)) = %q", s, got)
		}
	}
}

func TestDecodeLegacy_AcceptsPadding(t *testing.T) {
	got, err := DecodeLegacy("QjE=")
	if err != nil || got != "B1" {
		t.Errorf("DecodeLegacy(padded) = %q, %v", got, err)
	}
}

func TestResolve(t *testing.T) {
	sealer := newCodec(true)
	sealed, err := sealer.Seal("B-1001")
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	tests := []struct {
		name     string
		legacy   bool
		raw      string
		want     string
		wantCode string
	}{
		{name: "sealed", legacy: true, raw: sealed, want: "B-1001"},
		{name: "sealed without legacy", legacy: false, raw: sealed, want: "B-1001"},
		{name: "legacy", legacy: true, raw: EncodeLegacy("B-1001"), want: "B-1001"},
		{name: "legacy disabled falls back to plain", legacy: false, raw: EncodeLegacy("B-1001"), want: EncodeLegacy("B-1001")},
		{name: "plain id", legacy: true, raw: "B1001", want: "B1001"},
		{name: "base64-looking plain id without legacy", legacy: false, raw: "YWJj", want: "YWJj"},
		{name: "base64-looking plain id with legacy", legacy: true, raw: "YWJj", want: "abc"},
		{name: "empty", legacy: true, raw: "  ", wantCode: apperrors.CodeInvalidInput},
		{name: "garbage", legacy: true, raw: "not/a valid*id", wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCodec(tt.legacy)
			got, err := c.Resolve(tt.raw)
			if tt.wantCode != "" {
				if !apperrors.IsCode(err, tt.wantCode) {
					t.Errorf("Resolve() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}
