package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookstore/internal/config"
	"bookstore/internal/infrastructure/cache"
	"bookstore/internal/ui/apiclient"
	"bookstore/internal/ui/authentication"
	"bookstore/internal/ui/authstate"
	"bookstore/internal/ui/tokenstore"
	"bookstore/pkg/logger"
)

// UIContainer holds the dependencies of the server-rendered UI process.
type UIContainer struct {
	Config    *config.Config
	Redis     *cache.RedisClient
	Tokens    tokenstore.Store
	AuthState *authstate.Provider
	API       *apiclient.Client
	Auth      *authentication.Service

	unsubscribe func()
}

// NewUIContainer builds the UI graph on top of an existing token store.
func NewUIContainer(cfg *config.Config, tokens tokenstore.Store, api *apiclient.Client) *UIContainer {
	c := &UIContainer{
		Config:    cfg,
		Tokens:    tokens,
		AuthState: authstate.NewProvider(tokens),
		API:       api,
	}
	c.Auth = authentication.NewService(c.API, c.Tokens, c.AuthState)

	c.unsubscribe = c.AuthState.Subscribe(func(session string, state authstate.State) {
		log.Info().
			Str("session", session).
			Bool("authenticated", state.Authenticated).
			Str("user", state.Name()).
			Msg("[UI] authentication state changed")
	})
	return c
}

// NewUIContainerFromConfig selects the token store named in cfg.UI.TokenStore.
func NewUIContainerFromConfig(ctx context.Context, cfg *config.Config) (*UIContainer, error) {
	var (
		tokens tokenstore.Store
		redis  *cache.RedisClient
	)

	switch cfg.UI.TokenStore {
	case "redis":
		redis = cache.NewRedisClient(cfg.Redis)
		if err := redis.Connect(ctx); err != nil {
			_ = redis.Close()
			return nil, fmt.Errorf("failed to connect token store: %w", err)
		}
		tokens = tokenstore.NewRedisStore(redis.Client, cfg.JWT.Duration)
	default:
		log.Warn().Msg("[UI] using in-memory token store, sessions are lost on restart")
		tokens = tokenstore.NewMemoryStore(cfg.JWT.Duration)
	}

	c := NewUIContainer(cfg, tokens, apiclient.New(cfg.UI.APIBaseURL))
	c.Redis = redis
	return c, nil
}

func (c *UIContainer) Cleanup() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("[UI] failed to close redis", err, nil)
		}
	}
}
