package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/services/alliance"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/auth"
	"github.com/frostgate/svscoord/internal/services/booking"
	"github.com/frostgate/svscoord/internal/services/campaign"
	"github.com/frostgate/svscoord/internal/services/directory"
	"github.com/frostgate/svscoord/internal/services/invite"
	"github.com/frostgate/svscoord/internal/services/score"
	"github.com/frostgate/svscoord/internal/storage"
	"github.com/frostgate/svscoord/internal/storage/memory"
	redisstorage "github.com/frostgate/svscoord/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock clock.Clock

	// Services
	Recorder           *audit.Recorder
	InviteController   *invite.Controller
	Directory          *directory.Controller
	CampaignController *campaign.Controller
	BookingController  *booking.Controller
	ScoreController    *score.Controller
	AllianceController *alliance.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
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
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
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

	clk := clock.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	recorder := audit.NewRecorder(store, clk, logger)
	inviteController := invite.NewController(store, recorder, clk, logger)
	dir := directory.NewController(store, recorder, clk, logger)
	campaignController := campaign.NewController(store, recorder, clk, logger)
	bookingController := booking.NewController(store, recorder, clk, logger)
	scoreController := score.NewController(store, recorder, clk, logger)
	allianceController := alliance.NewController(store, recorder)
	authService := auth.New(store, inviteController, clk, logger, authCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		Recorder:           recorder,
		InviteController:   inviteController,
		Directory:          dir,
		CampaignController: campaignController,
		BookingController:  bookingController,
		ScoreController:    scoreController,
		AllianceController: allianceController,
		AuthService:        authService,
	}
}

// Close releases application resources. The audit recorder is drained
// before the storage connection is closed so buffered entries land.
func (a *App) Close() error {
	a.Recorder.Close()
	return a.Storage.Close()
}
