// Command bridgecli deals, scores and matchpoints boards from line commands on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"bridge/internal/app"
	"bridge/internal/config"
	"bridge/internal/notation"
	"bridge/internal/ports/redisstore"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func main() {
	configPath := flag.String("config", "", "path to a bridge JSON config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}
	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GetConfig()

	logger := newLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	var ledger *app.Ledger
	if cfg.RedisURL != "" {
		store, client, err := redisstore.Dial(cfg.RedisURL)
		if err != nil {
			logger.Error("redis", "err", err)
			os.Exit(1)
		}
		defer client.Close()
		ledger = app.NewLedger(store)
		logger.Info("recording scored boards", "redis", cfg.RedisURL)
	}

	svc := app.NewService(nil)
	seed := svc.SeedOrRandom(config.DealSeed())
	logger.Debug("deal seed", "seed", seed)
	r := &runner{
		svc:    svc,
		ledger: ledger,
		seed:   seed,
		out:    os.Stdout,
		log:    logger,
	}
	if err := r.run(context.Background(), os.Stdin); err != nil {
		logger.Error("read commands", "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}

type runner struct {
	svc    *app.Service
	ledger *app.Ledger
	seed   int64
	out    io.Writer
	log    *slog.Logger
}

// run executes one command per line. Blank lines and lines starting with # are skipped;
// a bad line is reported and the next one is read.
func (r *runner) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.execute(ctx, line); err != nil {
			r.log.Warn("command failed", "line", lineNo, "input", line, "err", err)
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (r *runner) execute(ctx context.Context, line string) error {
	cmd, err := notation.ParseCommand(line)
	if err != nil {
		return err
	}
	res, err := r.svc.Execute(cmd, r.seed)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, res)

	if cmd.Kind == notation.CommandScore && r.ledger != nil {
		if err := r.ledger.Record(ctx, res.Scored); err != nil {
			return err
		}
		standings, err := r.ledger.Standings(ctx, cmd.Board)
		if err != nil {
			return err
		}
		latest := standings[len(standings)-1]
		fmt.Fprintf(r.out, "  board %d: %d results, this table %.2f%% NS\n", cmd.Board, len(standings), latest.NSPercent)
	}
	r.log.Debug("executed", "command", string(cmd.Kind), "events", len(res.Events))
	return nil
}
