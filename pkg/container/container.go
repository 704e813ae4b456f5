package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore/internal/config"
	"bookstore/internal/infrastructure/database"
	"bookstore/internal/infrastructure/storage"
	"bookstore/pkg/jwt"
	"bookstore/pkg/logger"

	"bookstore/internal/domains/author"
	authorHandler "bookstore/internal/domains/author/handler"
	authorRepo "bookstore/internal/domains/author/repository"
	authorService "bookstore/internal/domains/author/service"

	bookHandler "bookstore/internal/domains/book/handler"
	bookRepo "bookstore/internal/domains/book/repository"
	bookService "bookstore/internal/domains/book/service"

	"bookstore/internal/domains/user"
	userHandler "bookstore/internal/domains/user/handler"
	userRepo "bookstore/internal/domains/user/repository"
	userService "bookstore/internal/domains/user/service"
)

// Container holds every long-lived dependency of the API process.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo author.Repository
	BookRepo   bookRepo.RepositoryInterface
	UserRepo   user.Repository

	// Services
	AuthorService author.Service
	BookService   bookService.ServiceInterface
	UserService   user.Service

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler
	AuthHandler   *userHandler.AuthHandler
}

// Repositories lets callers supply the data access layer, e.g. in-memory
// implementations in tests.
type Repositories struct {
	Author author.Repository
	Book   bookRepo.RepositoryInterface
	User   user.Repository
}

// New builds services and handlers on top of repos. objects may be nil, in
// which case cover uploads are rejected.
func New(cfg *config.Config, repos Repositories, objects bookService.ObjectStorage) *Container {
	c := &Container{
		Config:     cfg,
		AuthorRepo: repos.Author,
		BookRepo:   repos.Book,
		UserRepo:   repos.User,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Duration),
	}

	c.initServices(objects)
	c.initHandlers()
	return c
}

// NewContainer connects to PostgreSQL with retry, applies migrations, optionally connects
// to MinIO, wires every layer and seeds the default accounts.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] initializing")

	// ========================================
	// DATABASE
	// ========================================
	db := database.NewPostgresDB(cfg.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	// Migrate has no retry of its own; it runs after the pool is up.
	if err := database.Migrate(ctx, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// ========================================
	// OBJECT STORAGE
	// ========================================
	var (
		objects bookService.ObjectStorage
		minio   *storage.MinIOStorage
	)
	if cfg.MinIO.Enabled {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to init object storage: %w", err)
		}
		minio = s
		objects = s
	} else {
		logger.Warn("[CONTAINER] MinIO disabled, cover uploads will be rejected", map[string]interface{}{
			"endpoint": cfg.MinIO.Endpoint,
		})
	}

	// ========================================
	// LAYERS
	// ========================================
	c := New(cfg, Repositories{
		Author: authorRepo.NewPostgresRepository(db.Pool),
		Book:   bookRepo.NewPostgresRepository(db.Pool),
		User:   userRepo.NewPostgresRepository(db.Pool),
	}, objects)
	c.DB = db
	c.Storage = minio

	if err := userService.Bootstrap(ctx, c.UserService, cfg.Seed); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}

	log.Info().Msg("[CONTAINER] initialized")
	return c, nil
}

func (c *Container) initServices(objects bookService.ObjectStorage) {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, objects, storage.NewImageProcessor())
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Config.Security.BcryptCost)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService)
}

// Cleanup releases infrastructure resources. Safe to call more than once.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("[CONTAINER] cleanup completed")
}
