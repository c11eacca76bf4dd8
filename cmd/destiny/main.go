package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/destiny-core/internal/adapters/config"
	"github.com/selivandex/destiny-core/internal/engine"
	"github.com/selivandex/destiny-core/pkg/logger"
	"github.com/selivandex/destiny-core/pkg/models"
)

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		mode      = flag.String("mode", "reading", "operation: reading | pillars | chart | timing | weekly")
		inputPath = flag.String("input", "-", "path to birth input JSON, - for stdin")
		event     = flag.String("event", "", "event type for timing modes")
		fromStr   = flag.String("from", "", "range start YYYY-MM-DD (timing mode)")
		toStr     = flag.String("to", "", "range end YYYY-MM-DD (timing mode)")
		weekStr   = flag.String("week-start", "", "week start YYYY-MM-DD (weekly mode)")
		nowStr    = flag.String("now", "", "reference instant RFC3339, default current time")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	in, err := readInput(*inputPath)
	if err != nil {
		return err
	}

	now := time.Now()
	if *nowStr != "" {
		now, err = time.Parse(time.RFC3339, *nowStr)
		if err != nil {
			return fmt.Errorf("invalid -now value: %w", err)
		}
	}

	eng := engine.New(cfg)

	logger.Info("destiny engine starting",
		zap.String("mode", *mode),
		zap.String("standards", cfg.Standards.Version()),
	)

	var out any
	switch *mode {
	case "reading":
		out, err = eng.ComputeReading(ctx, in, now)
	case "pillars":
		out, err = eng.ComputePillars(ctx, in)
	case "chart":
		out, err = eng.ComputeChart(ctx, in)
	case "timing":
		from, to, perr := parseRange(*fromStr, *toStr)
		if perr != nil {
			return perr
		}
		out, err = eng.FindOptimalEventTiming(ctx, in, models.EventType(*event), from, to)
	case "weekly":
		week, perr := parseDate(*weekStr, "-week-start")
		if perr != nil {
			return perr
		}
		out, err = eng.FindWeeklyOptimalTiming(ctx, in, models.EventType(*event), week)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// readInput parses the birth input JSON from a file or stdin
func readInput(path string) (models.BirthInput, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return models.BirthInput{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var in models.BirthInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return models.BirthInput{}, fmt.Errorf("failed to parse birth input: %w", err)
	}
	return in, nil
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := parseDate(fromStr, "-from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(toStr, "-to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDate(s, flagName string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required for this mode", flagName)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s value: %w", flagName, err)
	}
	return t, nil
}
