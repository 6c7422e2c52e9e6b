package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/logging"
	"github.com/tgiagency/quote-funnel/internal/tui"
	"github.com/tgiagency/quote-funnel/internal/wizard"
)

const version = "1.0.0"

// runProgram drives the terminal UI. Tests swap it out.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Everything it opens is closed before it
// returns.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "Show version and exit")
	gateway := fs.String("gateway", envOr("AGENCY_GATEWAY_URL", "http://localhost:8080"), "Submission gateway base URL")
	dataDir := fs.String("data-dir", "", "Draft storage directory (default: $XDG_DATA_HOME/tgi-quote)")
	reset := fs.Bool("reset", false, "Discard the saved draft before starting")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "quote version %s\n", version)
		return 0
	}

	dir := *dataDir
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, "tgi-quote")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(stderr, "Failed to create data dir: %v\n", err)
		return 1
	}

	logger, err := logging.NewFile(filepath.Join(dir, "quote.log"))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	persister, err := wizard.OpenBadger(filepath.Join(dir, "draft"))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open draft store: %v\n", err)
		return 1
	}
	defer func() {
		if err := persister.Close(); err != nil {
			logger.Error("draft store close", zap.Error(err))
		}
	}()

	ctx := context.Background()
	store := wizard.NewStore(persister, logger)
	if *reset {
		if err := store.ResetForm(ctx); err != nil {
			fmt.Fprintf(stderr, "Failed to reset draft: %v\n", err)
			return 1
		}
	} else if err := store.Load(ctx); err != nil {
		logger.Warn("saved draft unreadable, starting fresh", zap.Error(err))
	}

	flow := wizard.NewFlow(store, wizard.NewClient(*gateway), logger)
	if err := runProgram(tui.NewModel(ctx, flow)); err != nil {
		logger.Error("wizard exited with error", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
