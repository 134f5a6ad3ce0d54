package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	authPostgres "github.com/lawateaditya/Stock-Management/internal/auth/postgres"
	"github.com/lawateaditya/Stock-Management/internal/catalog"
	catalogPostgres "github.com/lawateaditya/Stock-Management/internal/catalog/postgres"
	"github.com/lawateaditya/Stock-Management/internal/core/events"
	"github.com/lawateaditya/Stock-Management/internal/identityprovider"
	"github.com/lawateaditya/Stock-Management/internal/ledger"
	ledgerPostgres "github.com/lawateaditya/Stock-Management/internal/ledger/postgres"
	"github.com/lawateaditya/Stock-Management/internal/stock"
	"github.com/lawateaditya/Stock-Management/internal/transport/rest"
	"github.com/lawateaditya/Stock-Management/internal/user"
	userPostgres "github.com/lawateaditya/Stock-Management/internal/user/postgres"
	"github.com/lawateaditya/Stock-Management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger

	Policy         auth.Policy
	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	CatalogHandler *catalog.Handler
	LedgerHandler  *ledger.Handler
	StockHandler   *stock.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Config,
		deps.AuthHandler, deps.Policy, deps.UserHandler,
		deps.CatalogHandler, deps.LedgerHandler, deps.StockHandler,
		deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	// repositories
	authRepo := authPostgres.NewRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	catalogRepo := catalogPostgres.NewCatalogRepository(gormDB)
	ledgerRepo := ledgerPostgres.NewLedgerRepository(gormDB)

	// identity provider client; the base URL comes from config only and was
	// validated at load time
	providerClient := identityprovider.NewClient(identityprovider.Config{
		BaseURL: config.AuthProvider.BaseURL,
		Timeout: config.AuthProvider.Timeout,
	}, appLogger)

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)

	eventBus := events.NewEventBus(appLogger)
	ledger.NewEventHandler(appLogger).RegisterEventHandlers(eventBus)

	// services
	authService := auth.NewService(authRepo, providerClient, tokenGen, appLogger,
		config.Security.BCryptCost, config.Security.SessionDuration)
	userService := user.NewService(userRepo, appLogger, config.Security.BCryptCost)
	catalogService := catalog.NewService(catalogRepo, appLogger)
	ledgerService := ledger.NewService(ledgerRepo, eventBus, appLogger)
	stockService := stock.NewService(catalogService, ledgerService, appLogger)

	if err := authService.EnsureSuperAdmin(); err != nil {
		return nil, fmt.Errorf("failed to ensure super admin account: %w", err)
	}

	return &Dependencies{
		Config:         config,
		DB:             db,
		Router:         chi.NewRouter(),
		Logger:         appLogger,
		Policy:         auth.NewPolicy(),
		AuthHandler:    auth.NewHandler(authService),
		UserHandler:    user.NewHandler(userService),
		CatalogHandler: catalog.NewHandler(catalogService),
		LedgerHandler:  ledger.NewHandler(ledgerService),
		StockHandler:   stock.NewHandler(stockService),
	}, nil
}

// initDB initializes the database connection pool
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
