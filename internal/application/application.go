package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/zzyhdu/tk-tools/internal/api"
	"github.com/zzyhdu/tk-tools/internal/config"
	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/quote"
	"github.com/zzyhdu/tk-tools/internal/storage"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

const serviceName = "tk-tools"

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage    storage.Storage
	directory  *warehouse.Directory
	calculator quote.Calculator
	handler    *api.Handler
	router     http.Handler
	logger     *zap.Logger
	server     *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := newStorage(cfg.RateTablesFile, logger)
	if err != nil {
		return nil, err
	}

	dir := warehouse.Default()
	calc := quote.New(store, dir, quote.Options{
		MaxBatchSize: cfg.BatchMaxSize,
		Concurrency:  cfg.BatchConcurrency,
	})
	handler := api.NewHandler(calc, store, dir)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithExportRateLimit(cfg.ExportRateLimitRPS, cfg.ExportRateLimitBurst),
	)

	return &App{
		storage:    store,
		directory:  dir,
		calculator: calc,
		handler:    handler,
		router:     apiRouter,
		logger:     logger,
		server:     NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// newStorage seeds rate storage from path, or from the built-in tables when
// path is empty.
func newStorage(path string, logger *zap.Logger) (*storage.MemoryStorage, error) {
	if path == "" {
		logger.Info("using built-in rate tables")
		return storage.NewMemoryStorage(), nil
	}

	resolved, err := resolveProjectPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to locate rate tables: %w", err)
	}
	tables, err := freight.LoadRateTables(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate tables: %w", err)
	}
	store, err := storage.NewMemoryStorageWith(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to apply rate tables: %w", err)
	}

	logger.Info("loaded rate tables",
		zap.String("path", resolved),
		zap.Int("express_sea_cards", len(tables.ExpressSea)),
		zap.Int("standard_sea_cards", len(tables.StandardSea)),
		zap.Int("economy_sea_cards", len(tables.EconomySea)),
	)
	return store, nil
}

// BuildRootHandler routes /api/ traffic to apiHandler and answers / with a
// short service description.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"service": serviceName,
			"health":  "/api/health",
		})
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.Int("warehouses", a.directory.Len()),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// resolveProjectPath returns relative as-is when it exists, otherwise looks
// for it relative to each parent of the working directory. Absolute paths
// are only checked for existence.
func resolveProjectPath(relative string) (string, error) {
	if _, err := os.Stat(relative); err == nil {
		return relative, nil
	}
	if filepath.IsAbs(relative) {
		return "", fmt.Errorf("unable to locate %s", relative)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
