package services

import (
	"errors"
	"testing"
)

func TestFilterContent(t *testing.T) {
	ms := NewModerationService()
	tests := []struct {
		text   string
		ok     bool
		reason string
	}{
		{"Truck breakdown near Sion flyover", true, ""},
		{"", true, ""},
		{"this jam is bullshit", false, ReasonLanguage},
		{"details at https://example.com/jam", false, ReasonURL},
		{"call me on 9876543210", false, ReasonContactInfo},
		{"mail traffic@example.com", false, ReasonContactInfo},
		{"sloooooow traffic", false, ReasonSpam},
		{"HUGE JAMMM NEAR BANDRA TODAY", false, ReasonCaps},
		{"Jam near BKC and WEH", true, ""},
	}
	for _, tt := range tests {
		ok, reason := ms.FilterContent(tt.text)
		if ok != tt.ok || reason != tt.reason {
			t.Errorf("FilterContent(%q) = %v, %q; want %v, %q", tt.text, ok, reason, tt.ok, tt.reason)
		}
	}
}

func TestScreenReturnsFirstRejectedField(t *testing.T) {
	ms := NewModerationService()
	err := ms.Screen(map[string]string{
		"title":       "Accident",
		"description": "see www.example.com/x",
	}, "title", "description")

	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want *RejectionError", err)
	}
	if rej.Field != "description" || rej.Reason != ReasonURL {
		t.Errorf("rejection = %+v", rej)
	}
	if !errors.Is(err, ErrContentRejected) {
		t.Error("rejection does not match ErrContentRejected")
	}
	if rej.Message == "" {
		t.Error("missing user-facing message")
	}
}

func TestGetRejectionMessageFallback(t *testing.T) {
	ms := NewModerationService()
	if got := ms.GetRejectionMessage("unknown"); got != "Your report does not meet our content guidelines." {
		t.Errorf("fallback = %q", got)
	}
}
