package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mwieland/lectern/internal/config"
	"github.com/mwieland/lectern/internal/home"
	"github.com/mwieland/lectern/internal/server"
)

var (
	serveHost    string
	servePort    string
	serveCatalog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lectern reading server",
	Long: `Start the Lectern HTTP server.

The server renders the catechism reading view, serves the JSON API, and
hosts the websocket reading sessions that keep the progress slider and
scroll position in sync. Reader tuning in the config file hot-reloads
without a restart.

Examples:
  lectern serve                      # Start on default port 8080
  lectern serve --port 3000          # Start on custom port
  lectern serve --host 0.0.0.0       # Bind to all interfaces
  lectern serve --catalog my.yaml    # Serve a custom catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgPath := cfgFile
		if cfgPath == "" && h.ConfigExists() {
			cfgPath = h.ConfigPath()
		}
		cfgMgr, err := config.NewManager(cfgPath)
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()
		cfg := cfgMgr.Get()

		logger := newLogger(cfg.Log)
		slog.SetDefault(logger)

		// Flags override the config file.
		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		catalogPath := cfg.Catalog.Path
		if serveCatalog != "" {
			catalogPath = serveCatalog
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			CatalogPath:   catalogPath,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// newLogger builds the slog logger from the log config. When a file is
// configured, output goes to both stdout and a rotating log file.
func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Catalog YAML file (default: embedded catechism)")

	rootCmd.AddCommand(serveCmd)
}
