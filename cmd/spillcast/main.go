package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tidemark/spillcast/pkg/oildb"
)

var logLevel string

func main() {
	root := &cobra.Command{
		Use:   "spillcast",
		Short: "Marine oil spill dispersal and impact estimation",
		Long: `Spillcast models the fate of a marine oil spill: how much of the oil
evaporates, dissolves and stays on the surface, how far the slick spreads,
and what the cleanup, wildlife and economic consequences look like. It is
a single-shot empirical estimate at one elapsed time per run, not a
hydrodynamic simulation.

Examples:
  spillcast simulate --volume 5000 --lat 43.38 --lon 16.45 --oil crude
  spillcast simulate --volume 120000 --lat 28.74 --lon -88.37 --oil light_crude \
      --auto-conditions --map spill.html --json spill.json
  spillcast timeline --volume 5000 --lat 43.38 --lon 16.45 --oil crude --hours 6..72 --step 6
  spillcast batch scenarios.csv --json-dir out
  spillcast oils`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(simulateCommand(), timelineCommand(), batchCommand(), oilsCommand())

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// loadOils returns the builtin oil reference set, merged with the user's
// JSON file when one was given.
func loadOils(path string) (*oildb.DB, error) {
	if path == "" {
		return oildb.Builtin(), nil
	}
	return oildb.Load(path)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// writeArtifact renders into path, creating parent directories as needed.
func writeArtifact(path string, render func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
