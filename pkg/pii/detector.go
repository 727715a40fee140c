// pkg/pii/detector.go
package pii

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"datagovern/pkg/model"
)

// PII type tags recorded per row.
const (
	TagEmail   = "email"
	TagPhone   = "phone"
	TagAddress = "address"
	TagDOB     = "dob"
	TagName    = "name"
)

var (
	// A phone-bearing value must contain at least three consecutive digits.
	phoneDigits = regexp.MustCompile(`\d{3}`)
	// A DOB-bearing value must look like a date.
	dateLike = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}`)
)

// Occurrence is one detected PII value.
type Occurrence struct {
	RowNumber int
	Value     string
}

// HighRiskRow is a record carrying three or more distinct PII types.
type HighRiskRow struct {
	RowNumber int
	Types     []string
	Count     int
}

// Findings aggregates all PII detected in one pass over a dataset.
type Findings struct {
	Emails       []Occurrence
	Phones       []Occurrence
	Addresses    []Occurrence
	DOBs         []Occurrence
	Names        []Occurrence
	HighRiskRows []HighRiskRow
}

// ExposureRisk scores the breach exposure of a dataset. The scale is
// deliberately conservative: any dataset with PII is at least HIGH.
type ExposureRisk struct {
	TotalRows       int
	EmailCoverage   float64
	PhoneCoverage   float64
	AddressCoverage float64
	DOBCoverage     float64
	NameCoverage    float64
	RiskLevel       string
	HighRiskCount   int
}

// Detector scans datasets for PII-bearing fields.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new PII Detector instance.
func NewDetector(logger *zap.Logger) (*Detector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Detector{logger: logger}, nil
}

// Detect scans every record for PII presence and flags rows with three or
// more distinct PII types as high-risk.
func (d *Detector) Detect(records []model.Record) *Findings {
	d.logger.Info("Scanning for PII", zap.Int("rows", len(records)))

	found := &Findings{}

	for i, rec := range records {
		rowNum := i + 2
		var tags []string

		if present(rec.Email) {
			found.Emails = append(found.Emails, Occurrence{rowNum, rec.Email})
			tags = append(tags, TagEmail)
		}

		if present(rec.Phone) && phoneDigits.MatchString(rec.Phone) {
			found.Phones = append(found.Phones, Occurrence{rowNum, rec.Phone})
			tags = append(tags, TagPhone)
		}

		if present(rec.Address) {
			found.Addresses = append(found.Addresses, Occurrence{rowNum, rec.Address})
			tags = append(tags, TagAddress)
		}

		if present(rec.DateOfBirth) && dateLike.MatchString(rec.DateOfBirth) {
			found.DOBs = append(found.DOBs, Occurrence{rowNum, rec.DateOfBirth})
			tags = append(tags, TagDOB)
		}

		if present(rec.FirstName) || present(rec.LastName) {
			fullName := fmt.Sprintf("%s %s", rec.FirstName, rec.LastName)
			found.Names = append(found.Names, Occurrence{rowNum, fullName})
			tags = append(tags, TagName)
		}

		if len(tags) >= 3 {
			found.HighRiskRows = append(found.HighRiskRows, HighRiskRow{
				RowNumber: rowNum,
				Types:     tags,
				Count:     len(tags),
			})
		}
	}

	d.logger.Info("PII detection summary",
		zap.Int("emails", len(found.Emails)),
		zap.Int("phones", len(found.Phones)),
		zap.Int("addresses", len(found.Addresses)),
		zap.Int("dobs", len(found.DOBs)),
		zap.Int("highRiskRows", len(found.HighRiskRows)))

	return found
}

// CalculateExposureRisk computes per-field coverage and the overall risk
// level: CRITICAL when more than half the rows are high-risk, HIGH otherwise.
func (d *Detector) CalculateExposureRisk(totalRows int, findings *Findings) *ExposureRisk {
	risk := &ExposureRisk{
		TotalRows:       totalRows,
		EmailCoverage:   coverage(len(findings.Emails), totalRows),
		PhoneCoverage:   coverage(len(findings.Phones), totalRows),
		AddressCoverage: coverage(len(findings.Addresses), totalRows),
		DOBCoverage:     coverage(len(findings.DOBs), totalRows),
		NameCoverage:    coverage(len(findings.Names), totalRows),
		HighRiskCount:   len(findings.HighRiskRows),
	}

	if float64(risk.HighRiskCount) > float64(totalRows)*0.5 {
		risk.RiskLevel = "CRITICAL"
	} else {
		risk.RiskLevel = "HIGH"
	}

	d.logger.Info("Exposure risk calculated",
		zap.String("riskLevel", risk.RiskLevel),
		zap.Int("highRiskRows", risk.HighRiskCount))

	return risk
}

// coverage safely calculates a percentage, avoiding division by zero.
func coverage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
