// Package authstate derives the signed-in state of a UI session from its
// stored access token.
package authstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"bookstore/internal/ui/tokenstore"
	"bookstore/pkg/jwt"
)

// ClaimName is added to every authenticated state and carries the token subject.
const ClaimName = "name"

// State is the authentication state of one session.
// The zero value is anonymous.
type State struct {
	Authenticated bool
	Claims        gojwt.MapClaims
}

// Anonymous is the state of a session without a usable token.
var Anonymous = State{}

func (s State) Name() string {
	name, _ := s.Claims[ClaimName].(string)
	return name
}

func (s State) Email() string {
	email, _ := s.Claims[jwt.ClaimEmail].(string)
	return email
}

func (s State) Roles() []string {
	return jwt.StringList(s.Claims[jwt.ClaimRole])
}

func (s State) IsInRole(role string) bool {
	for _, r := range s.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Listener receives every state broadcast by LoggedIn and LoggedOut.
type Listener func(session string, state State)

type Provider struct {
	store tokenstore.Store
	now   func() time.Time

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func NewProvider(store tokenstore.Store, opts ...Option) *Provider {
	p := &Provider{
		store:     store,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state of session. It does not modify the store.
// The token signature is not checked here; the API verifies it on every call.
func (p *Provider) State(ctx context.Context, session string) (State, error) {
	token, err := p.store.Get(ctx, session)
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return Anonymous, nil
		}
		return Anonymous, fmt.Errorf("load session token: %w", err)
	}

	claims, err := decode(token)
	if err != nil {
		log.Debug().Err(err).Msg("stored token is unreadable")
		return Anonymous, nil
	}
	if !p.withinWindow(claims) {
		return Anonymous, nil
	}

	return authenticated(claims), nil
}

// LoggedIn derives the state from the freshly stored token and broadcasts it.
func (p *Provider) LoggedIn(ctx context.Context, session string) (State, error) {
	token, err := p.store.Get(ctx, session)
	if err != nil {
		return Anonymous, fmt.Errorf("load session token: %w", err)
	}

	claims, err := decode(token)
	if err != nil {
		return Anonymous, err
	}

	state := authenticated(claims)
	p.notify(session, state)
	return state, nil
}

// LoggedOut removes the session token and broadcasts the anonymous state.
func (p *Provider) LoggedOut(ctx context.Context, session string) error {
	if err := p.store.Remove(ctx, session); err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	p.notify(session, Anonymous)
	return nil
}

// Subscribe registers fn and returns a function that unregisters it.
func (p *Provider) Subscribe(fn Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *Provider) notify(session string, state State) {
	p.mu.RLock()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn(session, state)
	}
}

// withinWindow reports whether now lies in [nbf, exp). A token without exp
// never counts as valid.
func (p *Provider) withinWindow(claims gojwt.MapClaims) bool {
	now := p.now()

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !now.Before(exp.Time) {
		return false
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return false
	}
	if nbf != nil && now.Before(nbf.Time) {
		return false
	}
	return true
}

func decode(token string) (gojwt.MapClaims, error) {
	claims := gojwt.MapClaims{}
	if _, _, err := gojwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

func authenticated(claims gojwt.MapClaims) State {
	all := make(gojwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		all[k] = v
	}
	if sub, err := claims.GetSubject(); err == nil {
		all[ClaimName] = sub
	}
	return State{Authenticated: true, Claims: all}
}
