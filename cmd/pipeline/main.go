// Command pipeline runs the customer data governance pipeline: profile,
// validate, clean, detect PII, mask, and report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"datagovern/pkg/config"
	"datagovern/pkg/logging"
	"datagovern/pkg/pipeline"
)

var flagConfig = flag.String("config", "config/config.yaml", "Path to the YAML configuration file")

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	// .env is optional; environment variables override file config either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		// Absence of config is not fatal; fall back to defaults.
		cfg = config.Default()
	}

	logger, logErr := logging.New(cfg.Logging)
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", logErr)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err != nil {
		logger.Warn("Could not load config file, using defaults",
			zap.String("path", *flagConfig),
			zap.Error(err))
	}

	logger.Info("Starting PII detection and data quality pipeline",
		zap.String("input", cfg.Paths.InputCSV),
		zap.String("outputDir", cfg.Paths.OutputDir))

	if _, statErr := os.Stat(cfg.Paths.InputCSV); statErr != nil {
		logger.Error("Input file not found", zap.String("path", cfg.Paths.InputCSV))
		return 1
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize pipeline", zap.Error(err))
		return 1
	}

	if err := p.Execute(); err != nil {
		logger.Error("Pipeline execution failed", zap.Error(err))
		return 1
	}

	logger.Info("Pipeline execution completed successfully",
		zap.String("outputDir", cfg.Paths.OutputDir))

	return 0
}
