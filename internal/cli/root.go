// Package cli implements the clubinho command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/waabox/clubinho/internal/config"
	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/events"
)

// version is set at build time via -ldflags "-X github.com/waabox/clubinho/internal/cli.version=x.y.z".
var version = "dev"

var (
	cfgPath     string
	isDebug     bool
	metricsAddr string

	app *App
)

var rootCmd = &cobra.Command{
	Use:               "clubinho",
	Short:             "Clubinho admin client",
	Long:              `clubinho talks to the Clubinho admin API: children, clubs and the weekly dashboard.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight calls.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		initLogger(os.Stderr, slog.LevelInfo)
		slog.Error("Failed to load config", "error", err)
		return err
	}

	level := slog.LevelInfo
	if isDebug || cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	var logOut io.Writer = cmd.ErrOrStderr()
	if cmd == consoleCmd && !isDebug {
		// The console owns the terminal.
		logOut = io.Discard
	}
	initLogger(logOut, level)

	app, err = Build(cfg, cfgPath, slog.Default())
	if err != nil {
		slog.Error("Failed to initialize client", "error", err)
		return err
	}
	app.Bus.Subscribe(events.LogObserver{Logger: slog.Default()})
	addr := metricsAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	app.StartMetrics(addr)
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if app == nil {
		return
	}
	if err := app.Close(); err != nil {
		slog.Warn("Closing credential store", "error", err)
	}
}

func initLogger(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})))
}

// printToasts writes every toast to w for the duration of a one-shot command.
func printToasts(bus *events.Bus, w io.Writer) (unsubscribe func()) {
	return bus.Subscribe(events.Funcs{
		Toast: func(t domain.Toast) {
			fmt.Fprintf(w, "[%s] %s\n", t.Variant, t.Message)
		},
	})
}
