// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/reviewdesk/tokenvault/internal/config"
	cryptoDomain "github.com/reviewdesk/tokenvault/internal/crypto/domain"
	cryptoService "github.com/reviewdesk/tokenvault/internal/crypto/service"
	"github.com/reviewdesk/tokenvault/internal/database"
	"github.com/reviewdesk/tokenvault/internal/metrics"
	tenantsRepository "github.com/reviewdesk/tokenvault/internal/tenants/repository"
	tenantsUsecase "github.com/reviewdesk/tokenvault/internal/tenants/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. It follows the lazy initialization pattern - components are created
// on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Crypto
	keyring *cryptoDomain.Keyring
	cipher  cryptoService.TokenCipher

	// Repositories
	tenantRepo tenantsUsecase.TenantRepository

	// Use Cases
	tokenUseCase     tenantsUsecase.TokenUseCase
	migrationUseCase tenantsUsecase.TokenMigrationUseCase

	// Initialization flags and mutex for thread-safety
	mu                   sync.Mutex
	loggerInit           sync.Once
	dbInit               sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	txManagerInit        sync.Once
	keyringInit          sync.Once
	cipherInit           sync.Once
	tenantRepoInit       sync.Once
	tokenUseCaseInit     sync.Once
	migrationUseCaseInit sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider instance.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op
// implementation is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}

		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		txManager, err := c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = txManager
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Keyring returns the encryption keyring loaded from configuration.
// A missing or malformed current key is a fatal configuration error.
func (c *Container) Keyring() (*cryptoDomain.Keyring, error) {
	c.keyringInit.Do(func() {
		keyring, err := cryptoDomain.LoadKeyring(
			c.config.CurrentKey,
			c.config.PreviousKey,
			c.Logger(),
		)
		if err != nil {
			c.initErrors["keyring"] = err
			return
		}
		c.keyring = keyring
	})
	if storedErr, exists := c.initErrors["keyring"]; exists {
		return nil, storedErr
	}
	return c.keyring, nil
}

// TokenCipher returns the token cipher backed by the configured keyring.
func (c *Container) TokenCipher() (cryptoService.TokenCipher, error) {
	c.cipherInit.Do(func() {
		keyring, err := c.Keyring()
		if err != nil {
			c.initErrors["cipher"] = err
			return
		}

		cipher, err := cryptoService.NewTokenCipher(keyring)
		if err != nil {
			c.initErrors["cipher"] = err
			return
		}
		c.cipher = cipher
	})
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// TenantRepository returns the tenant repository instance.
func (c *Container) TenantRepository() (tenantsUsecase.TenantRepository, error) {
	c.tenantRepoInit.Do(func() {
		repo, err := c.initTenantRepository()
		if err != nil {
			c.initErrors["tenantRepo"] = err
			return
		}
		c.tenantRepo = repo
	})
	if storedErr, exists := c.initErrors["tenantRepo"]; exists {
		return nil, storedErr
	}
	return c.tenantRepo, nil
}

// TokenUseCase returns the token use case instance.
func (c *Container) TokenUseCase() (tenantsUsecase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		useCase, err := c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}
		c.tokenUseCase = useCase
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenMigrationUseCase returns the token migration use case instance.
func (c *Container) TokenMigrationUseCase() (tenantsUsecase.TokenMigrationUseCase, error) {
	c.migrationUseCaseInit.Do(func() {
		useCase, err := c.initTokenMigrationUseCase()
		if err != nil {
			c.initErrors["migrationUseCase"] = err
			return
		}
		c.migrationUseCase = useCase
	})
	if storedErr, exists := c.initErrors["migrationUseCase"]; exists {
		return nil, storedErr
	}
	return c.migrationUseCase, nil
}

// Shutdown performs cleanup of all initialized resources: flushes metrics,
// closes the database connection and zeroes key material.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.keyring != nil {
		c.keyring.Close()
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initTenantRepository creates the tenant repository instance.
func (c *Container) initTenantRepository() (tenantsUsecase.TenantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tenant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return tenantsRepository.NewMySQLTenantRepository(db), nil
	case "postgres":
		return tenantsRepository.NewPostgreSQLTenantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (tenantsUsecase.TokenUseCase, error) {
	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for token use case: %w", err)
	}

	cipher, err := c.TokenCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get token cipher for token use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	useCase := tenantsUsecase.NewTokenUseCase(tenantRepo, cipher, c.Logger())
	return tenantsUsecase.NewTokenUseCaseWithMetrics(useCase, bm), nil
}

// initTokenMigrationUseCase creates the token migration use case with all its dependencies.
func (c *Container) initTokenMigrationUseCase() (tenantsUsecase.TokenMigrationUseCase, error) {
	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for migration use case: %w", err)
	}

	cipher, err := c.TokenCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get token cipher for migration use case: %w", err)
	}

	keyring, err := c.Keyring()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring for migration use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for migration use case: %w", err)
	}

	useCase := tenantsUsecase.NewTokenMigrationUseCase(tenantRepo, cipher, keyring, c.Logger())
	return tenantsUsecase.NewTokenMigrationUseCaseWithMetrics(useCase, bm), nil
}
