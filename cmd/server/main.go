package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"github.com/debater-coder/wumpus/config"
	"github.com/debater-coder/wumpus/handlers"
	"github.com/debater-coder/wumpus/persistence"
	"github.com/debater-coder/wumpus/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development
		return true
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := openStorage(cfg)
	if err != nil {
		logger.Error("Failed to initialize persistence", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	catalog := services.NewLevelCatalog(db)
	if _, err := catalog.Get(cfg.DefaultLevel); err != nil {
		logger.Error("Default level unavailable", "level", cfg.DefaultLevel, "error", err)
		os.Exit(1)
	}

	scores := services.NewScoreService(db)
	sessionOpts := []services.SessionOption{services.WithSessionLogger(logger)}
	if cfg.Seed != nil {
		sessionOpts = append(sessionOpts, services.WithSeed(*cfg.Seed))
		logger.Info("Using fixed seed", "seed", *cfg.Seed)
	}
	svc := handlers.Services{
		Scores:       scores,
		Sessions:     services.NewSessionService(catalog, scores, sessionOpts...),
		Catalog:      catalog,
		DefaultLevel: cfg.DefaultLevel,
		Logger:       logger,
	}
	clientManager := handlers.NewClientManager(logger)

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("Failed to upgrade connection", "error", err)
			return
		}
		defer conn.Close()

		handlers.HandleClientConnection(conn, svc, clientManager)
	})

	logger.Info("Server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config) (persistence.Storage, error) {
	switch cfg.DBType {
	case config.DBTypePostgres:
		slog.Info("Using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.DatabaseURL)
	case config.DBTypeSQLite:
		slog.Info("Using SQLite persistence", "file", cfg.DBFile)
		return persistence.NewSQLiteStore(cfg.DBFile)
	default:
		slog.Info("Using JSON persistence", "file", cfg.DBFile)
		return persistence.NewJSONStore(cfg.DBFile)
	}
}
