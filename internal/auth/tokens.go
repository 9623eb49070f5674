package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goliatone/go-composer/internal/permissions"
)

var (
	ErrSecretRequired  = errors.New("auth: signing secret is required")
	ErrSubjectRequired = errors.New("auth: subject is required")
	ErrTokenMissing    = errors.New("auth: token is missing")
	ErrTokenExpired    = errors.New("auth: token is expired")
	ErrTokenInvalid    = errors.New("auth: token is invalid")
)

// Claims carries the operator identity and granted capabilities.
type Claims struct {
	Capabilities []string `json:"caps"`
	jwt.RegisteredClaims
}

// Checker exposes the granted capabilities as a permission checker.
func (c *Claims) Checker() permissions.Checker {
	if c == nil {
		return permissions.NewSet()
	}
	return permissions.NewSet(c.Capabilities...)
}

// Issuer signs HS256 tokens.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Verifier validates tokens signed by an Issuer sharing the same secret.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customises issuers and verifiers.
type Option func(*options)

type options struct {
	issuer string
	now    func() time.Time
}

// WithIssuerName sets the iss claim written and expected.
func WithIssuerName(name string) Option {
	return func(o *options) { o.issuer = strings.TrimSpace(name) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// NewIssuer builds an issuer for secret.
func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	o := buildOptions(opts)
	return &Issuer{secret: []byte(secret), issuer: o.issuer, now: o.now}, nil
}

// Issue signs a token for subject granting caps, valid for ttl.
func (i *Issuer) Issue(subject string, caps []string, ttl time.Duration) (Credential, error) {
	if strings.TrimSpace(subject) == "" {
		return Credential{}, ErrSubjectRequired
	}
	now := i.now()
	expires := now.Add(ttl)
	claims := Claims{
		Capabilities: append([]string(nil), caps...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Credential{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return Credential{Token: signed, Subject: subject, ExpiresAt: expires}, nil
}

// NewVerifier builds a verifier for secret.
func NewVerifier(secret string, opts ...Option) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	o := buildOptions(opts)
	return &Verifier{secret: []byte(secret), issuer: o.issuer, now: o.now}, nil
}

// Verify parses and validates token, returning its claims.
func (v *Verifier) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenMissing
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
