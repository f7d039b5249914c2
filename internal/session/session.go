// Package session turns the identity provider's push-style auth callback and
// its signed bearer tokens into an explicit Session value.
package session

import "github.com/ahmetcoskunkizilkaya/trafficwatch/internal/identity"

type State int

const (
	StateInit State = iota
	StateListening
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateListening:
		return "listening"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is the caller's identity as seen by the rest of the service.
type Session struct {
	State         State  `json:"state"`
	UserID        string `json:"user_id,omitempty"`
	AnonymousName string `json:"anonymous_name,omitempty"`
}

func Authenticated(userID string) Session {
	return Session{
		State:         StateAuthenticated,
		UserID:        userID,
		AnonymousName: identity.DeriveName(userID),
	}
}

func Anonymous() Session {
	return Session{State: StateAnonymous}
}

func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.UserID != ""
}

// Settled reports whether the provider has delivered its first answer.
func (s Session) Settled() bool {
	return s.State == StateAuthenticated || s.State == StateAnonymous
}
