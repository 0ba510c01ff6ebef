package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/univote/cliparse"
	"github.com/danielhkuo/univote/db"
	"github.com/danielhkuo/univote/eligibility"
	"github.com/danielhkuo/univote/handlers"
	"github.com/danielhkuo/univote/logging"
	"github.com/danielhkuo/univote/metrics"
	"github.com/danielhkuo/univote/middleware"
	"github.com/danielhkuo/univote/router"
	"github.com/danielhkuo/univote/sessions"
	"github.com/danielhkuo/univote/voteform"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.File = cfg.LogFile
	flush, err := logging.Setup(logCfg)
	if err != nil {
		slog.Error("logging setup failed", "error", err)
		os.Exit(1)
	}
	defer flush()

	// Domain tables
	tables, err := eligibility.LoadTables(cfg.UniversitiesFile, cfg.ProvidersFile)
	if err != nil {
		slog.Error("failed to load domain tables", "error", err)
		os.Exit(1)
	}
	slog.Info("Domain tables loaded",
		"universities", len(tables.Universities()),
		"providers", len(tables.Providers()),
	)

	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Solutions are added at runtime, so an incomplete form only warns here;
	// POST /forms answers 503 until it validates
	if formCfg, err := handlers.FormConfig(context.Background(), dbConn, cfg.ExpectedSolutions, tables, false); err != nil {
		slog.Error("failed to load solutions", "error", err)
		os.Exit(1)
	} else if err := formCfg.Validate(); err != nil {
		slog.Warn("forms unavailable", "error", err, "solutions", len(formCfg.Candidates))
	}

	m := metrics.New()
	store := sessions.NewStore(m)

	scheduler, err := sessions.NewScheduler(store, sessions.SchedulerConfig{
		SessionTTL:      cfg.SessionTTL,
		SweepSchedule:   cfg.SweepSchedule,
		ResultsSchedule: cfg.ResultsSchedule,
	}, resultsLoader(cfg, dbConn), m)
	if err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	mux := router.NewRouter(dbConn, cfg, router.Services{
		Tables:   tables,
		Sessions: store,
		Metrics:  m,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "expected_solutions", cfg.ExpectedSolutions)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// resultsLoader feeds the scheduled refresh; nil when forms hide results
func resultsLoader(cfg cliparse.Config, conn *sql.DB) sessions.ResultsLoader {
	if !cfg.ShowResults {
		return nil
	}
	return func(ctx context.Context) ([]voteform.Tally, error) {
		return handlers.LoadTallies(ctx, conn)
	}
}
