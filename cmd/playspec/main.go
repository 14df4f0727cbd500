// Command playspec runs the shape and polygon scenarios and prints their
// diagnostic output. The exit status is non-zero when a scenario fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
)

// logLevelVar is a custom flag.Value implementation for slog.LevelVar
type logLevelVar struct {
	levelVar *slog.LevelVar
}

func (v *logLevelVar) String() string {
	if v.levelVar == nil {
		return ""
	}
	return v.levelVar.Level().String()
}

func (v *logLevelVar) Set(s string) error {
	var level slog.Level
	switch strings.ToLower(s) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", s)
	}
	v.levelVar.Set(level)
	return nil
}

func main() {
	var (
		count    = flag.Int("n", 10, "number of polygons to generate")
		seed     = flag.Uint64("seed", 0, "seed for the polygon sides (0 picks one at random)")
		pattern  = flag.String("run", "", "run only the scenarios whose name contains this string")
		logLevel = new(slog.LevelVar)
	)
	logLevel.Set(slog.LevelWarn)
	flag.Var(&logLevelVar{levelVar: logLevel}, "log-level", "set log level (debug, info, warn, error)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()
	opts := options{Count: *count, Seed: *seed, Pattern: *pattern}
	failed, err := run(ctx, os.Stdout, logger, opts)
	if err != nil {
		log.Fatalf("Error: %+v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
