// prtrack-mcp exposes the PR tracker over MCP stdio. It reuses the
// session saved by the TUI, so log in with prtrack first.
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

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/prtrack/internal/api"
	"github.com/meltforce/prtrack/internal/config"
	"github.com/meltforce/prtrack/internal/mcp"
	"github.com/meltforce/prtrack/internal/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", filepath.Join(config.Dir(), "config.yaml"), "path to config file")
	serverURL := flag.String("server", "", "backend URL (overrides config)")
	flag.Parse()

	// Stdout carries the MCP transport; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
		err = nil
	}
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	sess := session.New(config.Dir())
	if err := sess.Load(); err != nil {
		log.Error("loading saved session", "error", err)
		os.Exit(1)
	}
	if !sess.Authenticated() {
		fmt.Fprintln(os.Stderr, "prtrack-mcp: no saved session; run prtrack and log in first")
		os.Exit(1)
	}

	client := api.New(cfg.Server.URL, sess, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)

	s := mcp.New(client, Version, log)
	log.Info("prtrack-mcp serving stdio", "version", Version, "server", cfg.Server.URL, "user", sess.Username())
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
