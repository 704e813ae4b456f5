package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claim names written by Generate. Persisted user claims never overwrite them.
const (
	ClaimSubject   = "sub"
	ClaimTokenID   = "jti"
	ClaimEmail     = "email"
	ClaimUserID    = "uid"
	ClaimRole      = "role"
	ClaimIssuer    = "iss"
	ClaimAudience  = "aud"
	ClaimIssuedAt  = "iat"
	ClaimNotBefore = "nbf"
	ClaimExpiresAt = "exp"
)

var reserved = map[string]struct{}{
	ClaimSubject: {}, ClaimTokenID: {}, ClaimEmail: {}, ClaimUserID: {}, ClaimRole: {},
	ClaimIssuer: {}, ClaimAudience: {}, ClaimIssuedAt: {}, ClaimNotBefore: {}, ClaimExpiresAt: {},
}

// ErrInvalidToken wraps every validation failure.
var ErrInvalidToken = errors.New("invalid token")

// Subject describes the user a token is issued for.
type Subject struct {
	UserID   string
	Username string
	Email    string
	Roles    []string
	// Extra holds persisted per-user claims keyed by claim type.
	Extra map[string][]string
}

// Claims is the validated content of a token.
type Claims struct {
	UserID    string
	Username  string
	Email     string
	Roles     []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	All       jwt.MapClaims
}

// Manager issues and validates HS256 access tokens.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	duration time.Duration
	now      func() time.Time
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a token manager.
func NewManager(secret, issuer, audience string, duration time.Duration, opts ...Option) *Manager {
	m := &Manager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		duration: duration,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Duration is the configured token lifetime.
func (m *Manager) Duration() time.Duration {
	return m.duration
}

// Generate signs a new access token for s.
// NumericDate has whole-second precision, so the issue time is truncated
// first and exp is always exactly iat plus the configured duration.
func (m *Manager) Generate(s Subject) (string, error) {
	now := m.now().Truncate(time.Second)

	claims := jwt.MapClaims{}
	for typ, values := range s.Extra {
		if _, ok := reserved[typ]; ok || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			claims[typ] = values[0]
		} else {
			claims[typ] = append([]string(nil), values...)
		}
	}

	roles := s.Roles
	if roles == nil {
		roles = []string{}
	}

	claims[ClaimSubject] = s.Username
	claims[ClaimTokenID] = uuid.NewString()
	claims[ClaimEmail] = s.Email
	claims[ClaimUserID] = s.UserID
	claims[ClaimRole] = roles
	claims[ClaimIssuer] = m.issuer
	claims[ClaimAudience] = m.audience
	claims[ClaimIssuedAt] = jwt.NewNumericDate(now)
	claims[ClaimNotBefore] = jwt.NewNumericDate(now)
	claims[ClaimExpiresAt] = jwt.NewNumericDate(now.Add(m.duration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, issuer, audience and lifetime with zero clock skew.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	mc := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, mc, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return FromMapClaims(mc), nil
}

// FromMapClaims extracts the well-known fields from a decoded claim set.
// It performs no validation.
func FromMapClaims(mc jwt.MapClaims) *Claims {
	c := &Claims{All: mc}
	c.Username, _ = mc[ClaimSubject].(string)
	c.TokenID, _ = mc[ClaimTokenID].(string)
	c.Email, _ = mc[ClaimEmail].(string)
	c.UserID, _ = mc[ClaimUserID].(string)
	c.Roles = StringList(mc[ClaimRole])

	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}

// StringList normalises a claim that may hold one string or an array of them.
func StringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
