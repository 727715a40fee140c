// Package pipeline orchestrates the eight-stage data governance run:
// LOAD -> PROFILE -> VALIDATE_RAW -> CLEAN -> VALIDATE_CLEAN -> DETECT_PII ->
// MASK -> SAVE. The first stage error halts the run; row-level validation
// issues are findings, not gates.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"datagovern/pkg/cleaner"
	"datagovern/pkg/config"
	"datagovern/pkg/masker"
	"datagovern/pkg/model"
	"datagovern/pkg/pii"
	"datagovern/pkg/profiler"
	"datagovern/pkg/report"
	"datagovern/pkg/validator"
)

// Pipeline stage names, in execution order.
const (
	StageLoad          = "LOAD"
	StageProfile       = "PROFILE"
	StageValidateRaw   = "VALIDATE_RAW"
	StageClean         = "CLEAN"
	StageValidateClean = "VALIDATE_CLEAN"
	StageDetectPII     = "DETECT_PII"
	StageMask          = "MASK"
	StageSave          = "SAVE"
)

// Output file names, relative to the output directory.
const (
	FileCleanedCSV      = "customers_cleaned.csv"
	FileMaskedCSV       = "customers_masked.csv"
	FileQualityReport   = "data_quality_report.txt"
	FileValidation      = "validation_results.txt"
	FileCleaningLog     = "cleaning_log.txt"
	FilePIIReport       = "pii_detection_report.txt"
	FileMaskedSample    = "masked_sample.txt"
	FileExecutionReport = "pipeline_execution_report.txt"
)

// Pipeline owns the canonical in-memory dataset at each stage and hands each
// component its designated working copy.
type Pipeline struct {
	inputCSV   string
	outputDir  string
	sampleRows int

	logger *zap.Logger
	stages *StageLog

	profiler  *profiler.DataProfiler
	validator *validator.DataValidator
	cleaner   *cleaner.DataCleaner
	detector  *pii.Detector
	masker    *masker.PIIMasker
}

// New creates a pipeline from configuration and ensures the output directory
// exists.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	prof, err := profiler.NewDataProfiler(logger)
	if err != nil {
		return nil, err
	}

	val, err := validator.NewDataValidator(logger)
	if err != nil {
		return nil, err
	}

	cln, err := cleaner.NewDataCleaner(logger)
	if err != nil {
		return nil, err
	}

	det, err := pii.NewDetector(logger)
	if err != nil {
		return nil, err
	}

	msk, err := masker.NewPIIMasker(logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		inputCSV:   cfg.Paths.InputCSV,
		outputDir:  cfg.Paths.OutputDir,
		sampleRows: cfg.Masking.SampleRows,
		logger:     logger,
		stages:     NewStageLog(logger),
		profiler:   prof,
		validator:  val,
		cleaner:    cln,
		detector:   det,
		masker:     msk,
	}, nil
}

// StageLog exposes the run's stage event sink.
func (p *Pipeline) StageLog() *StageLog {
	return p.stages
}

// Execute runs all stages in sequence, short-circuiting on the first stage
// failure. A failure still produces a pipeline_execution_report.txt
// describing how far the run got.
func (p *Pipeline) Execute() error {
	p.logger.Info("Starting pipeline",
		zap.String("runID", p.stages.RunID),
		zap.String("input", p.inputCSV),
		zap.String("outputDir", p.outputDir))

	// Stage 1: LOAD
	header, records, err := LoadCSV(p.inputCSV)
	if err != nil {
		return p.fail(StageLoad, err)
	}
	p.stages.Record(StageLoad, "OK",
		fmt.Sprintf("(%d rows, %d columns)", len(records), len(header)))

	// Stage 2: PROFILE
	profile := p.profiler.Profile(records)
	qualityReport := report.QualityReport(profile, time.Now())
	if err := writeText(p.outPath(FileQualityReport), qualityReport); err != nil {
		return p.fail(StageProfile, err)
	}
	p.stages.Record(StageProfile, "OK", "quality report generated")

	// Stage 3: VALIDATE_RAW
	if err := p.validator.ValidateSchema(header); err != nil {
		return p.fail(StageValidateRaw, err)
	}
	rawValidation := p.validator.ValidateDetailed(records, false)
	p.stages.Record(StageValidateRaw, issueStatus(rawValidation),
		fmt.Sprintf("(%d passed, %d issues)", rawValidation.PassedRows, rawValidation.FailureCount))

	// Stage 4: CLEAN
	cleaned, stats := p.cleaner.Clean(records)
	p.stages.Record(StageClean, "OK", fmt.Sprintf("(%d rows)", stats.RowsRemaining))

	// Stage 5: VALIDATE_CLEAN
	cleanValidation := p.validator.ValidateDetailed(cleaned, true)
	p.stages.Record(StageValidateClean, issueStatus(cleanValidation),
		fmt.Sprintf("(%d passed, %d issues)", cleanValidation.PassedRows, cleanValidation.FailureCount))

	// Stage 6: DETECT_PII
	findings := p.detector.Detect(cleaned)
	risk := p.detector.CalculateExposureRisk(len(cleaned), findings)
	p.stages.Record(StageDetectPII, "OK",
		fmt.Sprintf("(%d emails, %d phones)", len(findings.Emails), len(findings.Phones)))

	// Stage 7: MASK
	masked := p.masker.Mask(cleaned)
	maskedSample := report.MaskedSample(cleaned, masked, p.sampleRows)
	p.stages.Record(StageMask, "OK", fmt.Sprintf("(%d rows masked)", len(masked)))

	// Stage 8: SAVE
	if err := p.saveOutputs(cleaned, masked, rawValidation, cleanValidation, stats, findings, risk, maskedSample); err != nil {
		return p.fail(StageSave, err)
	}
	p.stages.Record(StageSave, "OK", "(all outputs saved)")

	p.writeExecutionReport("SUCCESS")

	p.logger.Info("Pipeline execution complete",
		zap.String("runID", p.stages.RunID),
		zap.Duration("duration", time.Since(p.stages.Started)),
		zap.Int("rowsOut", len(cleaned)))

	return nil
}

// saveOutputs writes both output CSVs and the remaining text reports. Each
// write is independent; the first failure aborts the stage.
func (p *Pipeline) saveOutputs(
	cleaned, masked []model.Record,
	rawValidation, cleanValidation *validator.Report,
	stats *model.CleaningStats,
	findings *pii.Findings,
	risk *pii.ExposureRisk,
	maskedSample string,
) error {
	if err := WriteCSV(p.outPath(FileCleanedCSV), cleaned); err != nil {
		return err
	}
	p.logger.Info("Saved cleaned dataset", zap.String("path", p.outPath(FileCleanedCSV)))

	if err := WriteCSV(p.outPath(FileMaskedCSV), masked); err != nil {
		return err
	}
	p.logger.Info("Saved masked dataset", zap.String("path", p.outPath(FileMaskedCSV)))

	reports := []struct {
		name    string
		content string
	}{
		{FileValidation, report.ValidationResults(rawValidation, cleanValidation)},
		{FileCleaningLog, report.CleaningLog(stats)},
		{FilePIIReport, report.PIIReport(findings, risk)},
		{FileMaskedSample, maskedSample},
	}

	for _, r := range reports {
		if err := writeText(p.outPath(r.name), r.content); err != nil {
			return err
		}
		p.logger.Info("Saved report", zap.String("path", p.outPath(r.name)))
	}

	return nil
}

// fail records the stage failure, writes a best-effort execution report, and
// returns a wrapped error for the process boundary.
func (p *Pipeline) fail(stage string, err error) error {
	p.stages.Record(stage, "FAILED", err.Error())
	p.logger.Error("Pipeline stage failed",
		zap.String("runID", p.stages.RunID),
		zap.String("stage", stage),
		zap.Error(err))

	p.writeExecutionReport("FAILED")

	return fmt.Errorf("stage %s failed: %w", stage, err)
}

// writeExecutionReport persists the stage log. Best effort: a report write
// failure is logged but never masks the pipeline outcome.
func (p *Pipeline) writeExecutionReport(status string) {
	content := report.ExecutionReport(p.stages.RunID, p.stages.Started, p.stages.Entries(), status)
	if err := writeText(p.outPath(FileExecutionReport), content); err != nil {
		p.logger.Warn("Failed to write execution report", zap.Error(err))
	}
}

func (p *Pipeline) outPath(name string) string {
	return filepath.Join(p.outputDir, name)
}

// issueStatus marks a validation stage OK only when no row had issues. Row
// issues are reported, never gated on.
func issueStatus(r *validator.Report) string {
	if r.FailureCount == 0 {
		return "OK"
	}
	return "ISSUES"
}
