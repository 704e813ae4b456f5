// Package authentication signs UI sessions in and out against the API.
package authentication

import (
	"context"
	"fmt"

	"bookstore/internal/domains/user"
	"bookstore/internal/ui/authstate"
	"bookstore/internal/ui/tokenstore"
)

// LoginClient is the part of the API client used for signing in.
type LoginClient interface {
	Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error)
}

type Service struct {
	client   LoginClient
	store    tokenstore.Store
	provider *authstate.Provider
}

func NewService(client LoginClient, store tokenstore.Store, provider *authstate.Provider) *Service {
	return &Service{client: client, store: store, provider: provider}
}

// Authenticate logs in through the API, stores the returned token for session
// and broadcasts the signed-in state. API errors are returned unchanged.
func (s *Service) Authenticate(ctx context.Context, session string, req user.LoginRequest) (authstate.State, error) {
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return authstate.Anonymous, err
	}

	if err := s.store.Set(ctx, session, resp.Token); err != nil {
		return authstate.Anonymous, fmt.Errorf("store session token: %w", err)
	}

	return s.provider.LoggedIn(ctx, session)
}

// Logout forgets the session token.
func (s *Service) Logout(ctx context.Context, session string) error {
	return s.provider.LoggedOut(ctx, session)
}
