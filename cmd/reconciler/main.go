package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"agency-reconciliation/internal/config"
	"agency-reconciliation/internal/gateway"
	"agency-reconciliation/internal/period"
	"agency-reconciliation/internal/usecase"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "reconciler.yaml", "Path to the YAML configuration file")
	modeStr := flag.String("mode", "month", "Period mode: month, cumulative, ytd or range")
	monthNum := flag.Int("month", 0, "Anchor month 1-12 (defaults to the current month)")
	yearNum := flag.Int("year", 0, "Anchor year (defaults to the current year)")
	startDateStr := flag.String("start", "", "Range start date (YYYY-MM-DD), inclusive")
	endDateStr := flag.String("end", "", "Range end date (YYYY-MM-DD), inclusive")
	agentStr := flag.String("agent", "", "Only report this agent id")
	ownerStr := flag.String("owner", "", "Only report this content owner id")
	format := flag.String("format", "json", "Output format: json, csv or xlsx")
	outPath := flag.String("out", "", "Output file (defaults to stdout; required for xlsx)")
	flag.Parse()

	// A missing .env is fine; the environment may be set by the caller.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Logger()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid timezone")
	}

	req, err := buildRequest(*modeStr, *monthNum, *yearNum, *startDateStr, *endDateStr, loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	*format = strings.ToLower(*format)
	if *format != "json" && *format != "csv" && *format != "xlsx" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}
	if *format == "xlsx" && *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -out is required for xlsx output")
		os.Exit(1)
	}
	if *agentStr != "" && *ownerStr != "" {
		fmt.Fprintln(os.Stderr, "Error: -agent and -owner are mutually exclusive")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Wiring the application) ---

	// 1. Create the repository (the outermost layer)
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.Source).Msg("Could not open data source")
	}
	defer closeRepo()

	// 2. Create the usecase and inject the repository (the core logic layer)
	resolver := period.NewResolver(cfg.ProgramInception, loc)
	reporting := usecase.NewReportingUseCase(repo, resolver, usecase.NewAggregator(cfg.Concurrency))

	// --- Execute the Usecase ---
	var result any
	switch {
	case *agentStr != "":
		agentID, err := uuid.Parse(*agentStr)
		if err != nil {
			logger.Fatal().Err(err).Str("agent", *agentStr).Msg("Invalid agent id")
		}
		result, err = reporting.AgentReport(ctx, req, agentID)
		if err != nil {
			logger.Fatal().Err(err).Msg("Agent report failed")
		}
	case *ownerStr != "":
		ownerID, err := uuid.Parse(*ownerStr)
		if err != nil {
			logger.Fatal().Err(err).Str("owner", *ownerStr).Msg("Invalid content owner id")
		}
		result, err = reporting.OwnerReport(ctx, req, ownerID)
		if err != nil {
			logger.Fatal().Err(err).Msg("Content owner report failed")
		}
	default:
		report, err := reporting.Report(ctx, req)
		if err != nil {
			logger.Fatal().Err(err).Msg("Reconciliation failed")
		}
		result = report
		logger.Info().
			Str("mode", string(report.Window.Mode)).
			Time("start", report.Window.Start).
			Time("end", report.Window.End).
			Int("agents", len(report.Agents)).
			Int("content_owners", len(report.ContentOwners)).
			Msg("Report computed")
	}

	// --- Present the Output ---
	out := io.Writer(os.Stdout)
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *outPath).Msg("Could not create output file")
		}
		defer file.Close()
		out = file
	}

	if err := writeResult(out, *format, result); err != nil {
		logger.Fatal().Err(err).Str("format", *format).Msg("Failed to write report")
	}
}

// openRepository builds the configured data source and its cleanup.
func openRepository(ctx context.Context, cfg config.Config, logger zerolog.Logger) (usecase.Repository, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres:
		store, err := gateway.OpenPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Migrate {
			if err := store.Migrate(ctx); err != nil {
				store.Close()
				return nil, nil, err
			}
		}
		return store, func() { store.Close() }, nil
	default:
		store, err := gateway.LoadFileStore(ctx, cfg.DataDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
