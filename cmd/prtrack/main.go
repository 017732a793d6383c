package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/prtrack/internal/api"
	"github.com/meltforce/prtrack/internal/config"
	"github.com/meltforce/prtrack/internal/records"
	"github.com/meltforce/prtrack/internal/session"
	"github.com/meltforce/prtrack/internal/tui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", filepath.Join(config.Dir(), "config.yaml"), "path to config file")
	serverURL := flag.String("server", "", "backend URL (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("prtrack", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
		err = nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "prtrack:", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "prtrack:", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	log, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "prtrack:", err)
		os.Exit(1)
	}
	defer closeLog()
	log.Info("prtrack starting", "version", Version, "server", cfg.Server.URL)

	sess := session.New(config.Dir())
	if err := sess.Load(); err != nil {
		log.Warn("loading saved session", "error", err)
	}

	client := api.New(cfg.Server.URL, sess, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	client.OnUnauthorized(func() {
		if err := sess.Clear(); err != nil {
			log.Error("clearing rejected session", "error", err)
		}
	})

	list := records.NewList(client)

	p := tea.NewProgram(tui.New(client, sess, list, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("ui error", "error", err)
		fmt.Fprintln(os.Stderr, "prtrack:", err)
		os.Exit(1)
	}
	log.Info("prtrack stopped")
}

func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return log, func() { f.Close() }, nil
}
