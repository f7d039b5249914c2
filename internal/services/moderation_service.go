package services

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrContentRejected = errors.New("content rejected")

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

const (
	ReasonLanguage    = "inappropriate_language"
	ReasonURL         = "url_not_allowed"
	ReasonContactInfo = "contact_info_not_allowed"
	ReasonSpam        = "spam_detected"
	ReasonCaps        = "excessive_caps"
)

var rejectionMessages = map[string]string{
	ReasonLanguage:    "Your report contains inappropriate language.",
	ReasonURL:         "URLs and web links are not allowed in reports.",
	ReasonContactInfo: "Contact information is not allowed in reports.",
	ReasonSpam:        "Your report appears to be spam.",
	ReasonCaps:        "Please avoid using excessive capital letters.",
}

// RejectionError carries the filter reason alongside a message safe to show
// to the submitter.
type RejectionError struct {
	Field   string
	Reason  string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *RejectionError) Unwrap() error { return ErrContentRejected }

// ModerationService screens free-text report fields before they are stored.
type ModerationService struct {
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewModerationService() *ModerationService {
	ms := &ModerationService{
		bannedWordRegexps: make([]*regexp.Regexp, 0, len(BannedWords)),
	}
	for _, word := range BannedWords {
		ms.bannedWordRegexps = append(ms.bannedWordRegexps,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	ms.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	// Indian mobile numbers as well as 3-3-4 groupings.
	ms.phonePattern = regexp.MustCompile(`(\+91[-\s]?)?[6-9]\d{9}\b|\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	ms.repeatedCharPattern = regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`)
	ms.allCapsPattern = regexp.MustCompile(`[A-Z]{5,}`)
	return ms
}

// FilterContent returns false and a reason code when text breaks a rule.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, ReasonLanguage
		}
	}
	if ms.urlPattern.MatchString(text) {
		return false, ReasonURL
	}
	if ms.emailPattern.MatchString(text) || ms.phonePattern.MatchString(text) {
		return false, ReasonContactInfo
	}
	if ms.repeatedCharPattern.MatchString(text) {
		return false, ReasonSpam
	}
	if len(ms.allCapsPattern.FindAllString(text, -1)) > 2 {
		return false, ReasonCaps
	}
	return true, ""
}

func (ms *ModerationService) GetRejectionMessage(reason string) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	return "Your report does not meet our content guidelines."
}

// Screen checks each named field and returns a *RejectionError for the
// first one that fails.
func (ms *ModerationService) Screen(fields map[string]string, order ...string) error {
	for _, name := range order {
		if ok, reason := ms.FilterContent(fields[name]); !ok {
			return &RejectionError{
				Field:   name,
				Reason:  reason,
				Message: ms.GetRejectionMessage(reason),
			}
		}
	}
	return nil
}
