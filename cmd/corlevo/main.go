package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/corlevo/corlevo/internal/catalog"
	"github.com/corlevo/corlevo/internal/config"
	"github.com/corlevo/corlevo/internal/daemon"
	"github.com/corlevo/corlevo/internal/database"
	"github.com/corlevo/corlevo/internal/errorlog"
	"github.com/corlevo/corlevo/internal/logging"
	"github.com/corlevo/corlevo/internal/telemetry"
	"github.com/corlevo/corlevo/internal/version"
	"github.com/corlevo/corlevo/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.New()
	logging.Init(cfg.Log.Level, cfg.Log.Pretty)

	command := os.Args[1]

	switch command {
	case "serve":
		serve(cfg)
	case "start":
		startDaemon(cfg)
	case "stop":
		stopDaemon(cfg)
	case "status":
		showStatus(cfg)
	case "migrate":
		migrate(cfg)
	case "clear":
		clearProducts(cfg)
	case "version":
		showVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`corlevo - Product catalog API

Usage:
  corlevo <command>

Commands:
  serve              Run the API server in the foreground
  start              Run the API server in the background
  stop               Stop the background API server
  status             Show whether the API server is running
  migrate            Create or update the database schema
  clear              Delete all products
  version            Show version information
  help               Show this help message

Environment Variables:
  CORLEVO_DB_DRIVER            sqlite (default) or postgres
  CORLEVO_DB_PATH              SQLite database file path
  CORLEVO_DB_DSN               PostgreSQL connection string
  CORLEVO_DB_DEBUG             Log SQL statements (true/false)
  CORLEVO_WEB_HOST             Listen host
  CORLEVO_WEB_PORT             Listen port
  CORLEVO_PID_FILE             PID file path
  CORLEVO_LOG_LEVEL            debug, info, warn, error
  CORLEVO_LOG_PRETTY           Console log output (true/false)
  OTEL_EXPORTER_OTLP_ENDPOINT  Export traces over OTLP/HTTP

Version: %s
`, version.Version)
}

func fatal(err error, msg string) {
	logging.Logger().Fatal().Err(err).Msg(msg)
}

func openDatabase(cfg *config.Config) *database.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		fatal(err, "failed to connect to database")
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		fatal(err, "failed to initialize database")
	}
	return db
}

func serve(cfg *config.Config) {
	log := logging.Logger()
	if err := cfg.Validate(); err != nil {
		fatal(err, "invalid configuration")
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		fatal(err, "failed to check server status")
	}
	if running {
		log.Fatal().Int("pid", pid).Msg("server is already running")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		fatal(err, "failed to initialize telemetry")
	}

	db := openDatabase(cfg)
	defer db.Close()

	if err := dm.WritePID(); err != nil {
		fatal(err, "failed to write PID file")
	}
	defer dm.RemovePID()

	repo := database.NewRepository(db)
	handler := web.NewHandler(catalog.NewService(repo), errorlog.NewRecorder(repo), db)
	server := web.NewServer(cfg, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().Str("addr", "http://"+server.GetAddress()).Msg("corlevo API started")
	log.Debug().Msg(cfg.String())

	select {
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	case err := <-errCh:
		log.Error().Err(err).Msg("web server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down web server")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error flushing traces")
	}

	log.Info().Msg("server stopped")
}

func startDaemon(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		fatal(err, "invalid configuration")
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		fatal(err, "failed to check server status")
	}
	if running {
		logging.Logger().Fatal().Int("pid", pid).Msg("server is already running")
	}

	logPath := fmt.Sprintf("/tmp/corlevo-%d.log", os.Getuid())
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fatal(err, "failed to open log file")
	}
	defer logFile.Close()

	args := []string{os.Args[0], "serve"}
	procAttr := &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{nil, logFile, logFile},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}

	process, err := os.StartProcess(os.Args[0], args, procAttr)
	if err != nil {
		fatal(err, "failed to start server process")
	}

	fmt.Printf("Server started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("API available at: http://%s\n", cfg.Address())
	fmt.Printf("Logs: %s\n", logPath)
}

func stopDaemon(cfg *config.Config) {
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		fatal(err, "failed to check server status")
	}
	if !running {
		fmt.Println("Server is not running")
		return
	}

	fmt.Printf("Stopping server (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		fatal(err, "failed to stop server")
	}
	fmt.Println("Server stopped successfully")
}

func showStatus(cfg *config.Config) {
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		fatal(err, "failed to check server status")
	}

	if !running {
		fmt.Println("Status: Not running")
		return
	}

	fmt.Printf("Status: Running (PID: %d)\n", pid)
	fmt.Printf("Address: http://%s\n", cfg.Address())
	fmt.Printf("Database: %s\n", cfg.Database.Driver)
}

func migrate(cfg *config.Config) {
	db := openDatabase(cfg)
	defer db.Close()
	fmt.Println("Database schema is up to date")
}

func clearProducts(cfg *config.Config) {
	fmt.Print("This will delete all products. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)
	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	db := openDatabase(cfg)
	defer db.Close()

	removed, err := database.NewRepository(db).Clear(context.Background())
	if err != nil {
		fatal(err, "failed to clear products")
	}
	fmt.Printf("Removed %d products\n", removed)
}

func showVersion() {
	fmt.Printf("version: %s\n", version.Version)
	fmt.Printf("built  : %s\n", version.Date)
}
