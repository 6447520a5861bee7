package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/bagrada/mythmeta/internal/dependencies/clock"
	"github.com/bagrada/mythmeta/internal/dependencies/random"
	"github.com/bagrada/mythmeta/internal/services/account"
	"github.com/bagrada/mythmeta/internal/services/ledger"
	"github.com/bagrada/mythmeta/internal/services/session"
	"github.com/bagrada/mythmeta/internal/storage"
	"github.com/bagrada/mythmeta/internal/storage/memory"
	redisstorage "github.com/bagrada/mythmeta/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AccountService *account.Service
	SessionService *session.Service
	LedgerService  *ledger.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AccountConfig holds configuration for the account service (optional)
	// The zero value uses the reject-when-full overflow policies
	AccountConfig account.Config
	// SessionConfig holds configuration for the session service (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.AccountConfig, cfg.SessionConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, accountCfg account.Config, sessionCfg session.Config, logger *slog.Logger) *App {
	// Create services
	accountService := account.New(store, clk, rnd, accountCfg, logger)
	sessionService := session.New(accountService, store, clk, sessionCfg, logger)
	ledgerService := ledger.New(store, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AccountService: accountService,
		SessionService: sessionService,
		LedgerService:  ledgerService,
	}
}
