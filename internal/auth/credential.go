package auth

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Credential is the bearer token attached to save requests.
type Credential struct {
	Token     string    `json:"token"`
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Empty reports whether no token is present.
func (c Credential) Empty() bool {
	return strings.TrimSpace(c.Token) == ""
}

// Expired reports whether the credential is past its expiry at now. A zero
// expiry never expires.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Usable reports whether the credential can be sent at now.
func (c Credential) Usable(now time.Time) bool {
	return !c.Empty() && !c.Expired(now)
}

// CredentialSource hands out the current session credential. It returns
// ok=false when there is no session.
type CredentialSource interface {
	Credential(ctx context.Context) (Credential, bool)
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func(ctx context.Context) (Credential, bool)

func (fn CredentialFunc) Credential(ctx context.Context) (Credential, bool) {
	return fn(ctx)
}

// StaticCredentials is a settable in-memory session.
type StaticCredentials struct {
	mu   sync.RWMutex
	cred Credential
}

// NewStaticCredentials returns a source holding cred.
func NewStaticCredentials(cred Credential) *StaticCredentials {
	return &StaticCredentials{cred: cred}
}

// Set replaces the session credential.
func (s *StaticCredentials) Set(cred Credential) {
	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()
}

// Clear ends the session.
func (s *StaticCredentials) Clear() {
	s.Set(Credential{})
}

func (s *StaticCredentials) Credential(context.Context) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred.Empty() {
		return Credential{}, false
	}
	return s.cred, true
}
