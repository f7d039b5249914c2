package identity

import (
	"regexp"
	"testing"
)

var namePattern = regexp.MustCompile(`^Anonymous User #\d{4}$`)

func TestDeriveNameDeterministic(t *testing.T) {
	for _, uid := range []string{"", "a", "kT9s0ZyQ1bWx4Lm2", "user@example.com", "🚦traffic"} {
		if DeriveName(uid) != DeriveName(uid) {
			t.Errorf("DeriveName(%q) not deterministic", uid)
		}
	}
}

func TestDeriveNameFormat(t *testing.T) {
	uids := []string{"", "x", "0", "Zz", "firebase-uid-123456789", "ünïcødé", "🚦🚦🚦", string(make([]byte, 512))}
	for _, uid := range uids {
		if got := DeriveName(uid); !namePattern.MatchString(got) {
			t.Errorf("DeriveName(%q) = %q, does not match %s", uid, got, namePattern)
		}
	}
}

func TestDeriveNameKnownValues(t *testing.T) {
	tests := []struct {
		uid  string
		want string
	}{
		{"", "Anonymous User #0000"},
		{"a", "Anonymous User #0097"},
		{"ab", "Anonymous User #3105"},
		// 32-bit overflow: the accumulator wraps negative before abs.
		{"zzzzzzzz", "Anonymous User #2912"},
		{"hello world", "Anonymous User #6052"},
	}
	for _, tt := range tests {
		if got := DeriveName(tt.uid); got != tt.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tt.uid, got, tt.want)
		}
	}
}

func TestDeriveNameDistinguishesInputs(t *testing.T) {
	if DeriveName("alice") == DeriveName("bob") {
		t.Error("expected different names for alice and bob")
	}
}
