// pkg/validator/validator.go
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"datagovern/pkg/model"
)

var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cleanPhonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

// RowFailure describes a single record that failed validation.
type RowFailure struct {
	RowNumber int          // 1-based, offset by 1 for the header row
	Issues    []string     // Ordered, human-readable issue descriptions
	Record    model.Record // Original field values for reporting
}

// Report is the result of one detailed validation pass. Immutable once
// produced.
type Report struct {
	TotalRows    int
	PassedRows   int
	FailedRows   []RowFailure
	FailureCount int
	PassRate     float64 // Percent of rows with zero issues
}

// DataValidator checks datasets against the fixed customer schema.
type DataValidator struct {
	logger *zap.Logger
}

// NewDataValidator creates a new DataValidator instance.
func NewDataValidator(logger *zap.Logger) (*DataValidator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &DataValidator{logger: logger}, nil
}

// ValidateSchema checks that the dataset header exactly matches the fixed
// ten-column schema, in order. A mismatch is a hard failure with no per-row
// detail.
func (v *DataValidator) ValidateSchema(header []string) error {
	expected := model.Columns()

	if len(header) != len(expected) {
		return fmt.Errorf("column mismatch: expected %v, got %v", expected, header)
	}

	for i, col := range expected {
		if header[i] != col {
			return fmt.Errorf("column mismatch: expected %v, got %v", expected, header)
		}
	}

	v.logger.Info("Schema validation passed", zap.Int("columns", len(header)))
	return nil
}

// ValidateDetailed runs per-row validation and collects itemized issues.
// The cleaned flag switches the phone check from a lenient digit-count rule
// to the strict XXX-XXX-XXXX format.
func (v *DataValidator) ValidateDetailed(records []model.Record, cleaned bool) *Report {
	v.logger.Info("Running detailed validation",
		zap.Bool("cleaned", cleaned),
		zap.Int("rows", len(records)))

	var failed []RowFailure

	for i, rec := range records {
		issues := v.checkRecord(rec, cleaned)
		if len(issues) > 0 {
			failed = append(failed, RowFailure{
				RowNumber: i + 2, // +1 for header, +1 for 1-based indexing
				Issues:    issues,
				Record:    rec,
			})
		}
	}

	report := &Report{
		TotalRows:    len(records),
		PassedRows:   len(records) - len(failed),
		FailedRows:   failed,
		FailureCount: len(failed),
	}
	if report.TotalRows > 0 {
		report.PassRate = float64(report.PassedRows) / float64(report.TotalRows) * 100
	}

	v.logger.Info("Detailed validation complete",
		zap.Int("passed", report.PassedRows),
		zap.Int("failed", report.FailureCount))

	return report
}

// checkRecord collects zero or more issue strings for one record.
func (v *DataValidator) checkRecord(rec model.Record, cleaned bool) []string {
	var issues []string

	// customer_id must be a positive integer
	cid, err := strconv.Atoi(strings.TrimSpace(rec.CustomerID))
	if err != nil {
		issues = append(issues, "customer_id must be integer")
	} else if cid <= 0 {
		issues = append(issues, "customer_id must be positive")
	}

	// email format, if present
	if email := strings.TrimSpace(rec.Email); email != "" {
		if !emailPattern.MatchString(email) {
			issues = append(issues, fmt.Sprintf("Invalid email format: %s", rec.Email))
		}
	}

	// phone format, if present
	if phone := strings.TrimSpace(rec.Phone); phone != "" {
		if cleaned {
			if !cleanPhonePattern.MatchString(phone) {
				issues = append(issues, fmt.Sprintf("Phone must be XXX-XXX-XXXX format: %s", rec.Phone))
			}
		} else if countDigits(phone) < 10 {
			issues = append(issues, fmt.Sprintf("Phone number too short: %s", rec.Phone))
		}
	}

	// account_status closed set, if present
	if status := strings.TrimSpace(rec.AccountStatus); status != "" {
		switch strings.ToLower(status) {
		case "active", "inactive", "suspended":
		default:
			issues = append(issues, fmt.Sprintf("Invalid account_status: %s", rec.AccountStatus))
		}
	}

	return issues
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
