// Package report renders the human-readable text reports emitted by the
// pipeline. All output is plain UTF-8 with ASCII status markers.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"datagovern/pkg/model"
	"datagovern/pkg/pii"
	"datagovern/pkg/profiler"
	"datagovern/pkg/validator"
)

const sectionRule = "----------------------------------------"

// QualityReport renders the profiler output as data_quality_report.txt.
func QualityReport(p *profiler.Profile, generatedAt time.Time) string {
	lines := []string{
		"DATA QUALITY PROFILE REPORT",
		"===========================",
		"",
		fmt.Sprintf("Generated: %s", generatedAt.Format(time.RFC3339)),
		fmt.Sprintf("Total Rows: %d", p.TotalRows),
		fmt.Sprintf("Total Columns: %d", p.TotalColumns),
		"",
		"COMPLETENESS:",
		sectionRule,
	}

	nameWidth := columnNameWidth()
	for _, col := range model.Columns() {
		c := p.Completeness[col]
		status := "[OK]"
		if c.Percent < 50 {
			status = "[FAIL]"
		} else if c.Percent < 80 {
			status = "[WARN]"
		}
		lines = append(lines, fmt.Sprintf("  %s %s %5.1f%% (%d/%d)",
			padRight(status, 6), padRight(col+":", nameWidth+1), c.Percent, c.NonEmpty, p.TotalRows))
	}

	lines = append(lines, "", "DATA TYPES:", sectionRule)
	for _, col := range model.Columns() {
		dtype := p.InferredTypes[col]
		status := "[OK]"
		if strings.Contains(dtype, "should be") {
			status = "[FAIL]"
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s",
			padRight(status, 6), padRight(col+":", nameWidth+1), dtype))
	}

	lines = append(lines, "", "QUALITY ISSUES:", sectionRule)

	if len(p.PhoneIssues) > 0 {
		lines = append(lines, fmt.Sprintf("  Phone Format Issues (%d):", len(p.PhoneIssues)))
		for _, issue := range head(p.PhoneIssues, 5) {
			lines = append(lines, fmt.Sprintf("    - Row %d: '%s'", issue.RowNumber, issue.Detail))
		}
	}

	if len(p.DateIssues) > 0 {
		lines = append(lines, fmt.Sprintf("  Date Format Issues (%d):", len(p.DateIssues)))
		for _, issue := range head(p.DateIssues, 5) {
			lines = append(lines, fmt.Sprintf("    - Row %d: '%s'", issue.RowNumber, issue.Detail))
		}
	}

	if len(p.CaseIssues) > 0 {
		lines = append(lines, fmt.Sprintf("  Name Case Issues (%d):", len(p.CaseIssues)))
		for _, issue := range head(p.CaseIssues, 3) {
			lines = append(lines, fmt.Sprintf("    - Row %d: '%s'", issue.RowNumber, issue.Detail))
		}
	}

	if len(p.InvalidStatuses) > 0 {
		lines = append(lines, fmt.Sprintf("  Invalid account_status (%d):", len(p.InvalidStatuses)))
		for _, issue := range head(p.InvalidStatuses, 3) {
			lines = append(lines, fmt.Sprintf("    - Row %d: '%s'", issue.RowNumber, issue.Detail))
		}
	}

	if p.Incomes.Negative > 0 {
		lines = append(lines, fmt.Sprintf("  Negative Income: %d rows", p.Incomes.Negative))
	}
	if p.Incomes.Over10M > 0 {
		lines = append(lines, fmt.Sprintf("  Income over 10M: %d rows", p.Incomes.Over10M))
	}

	lines = append(lines,
		"",
		"SEVERITY SUMMARY:",
		sectionRule,
		fmt.Sprintf("  Critical (blocks processing): %d", p.CustomerIDs.Invalid),
		fmt.Sprintf("  High (data incorrect): %d", len(p.DateIssues)+p.Incomes.Negative),
		fmt.Sprintf("  Medium (needs cleaning): %d", len(p.PhoneIssues)+len(p.CaseIssues)),
		fmt.Sprintf("  Total Issues: %d", p.TotalIssues()),
		"",
	)

	return strings.Join(lines, "\n")
}

// ValidationResults renders both validation passes as validation_results.txt,
// sampling up to 10 failing rows from each.
func ValidationResults(raw, clean *validator.Report) string {
	lines := []string{
		"VALIDATION RESULTS",
		"==================",
		"",
		"RAW DATA VALIDATION:",
		sectionRule,
	}
	lines = append(lines, summaryLines(raw)...)

	if len(raw.FailedRows) > 0 {
		lines = append(lines, "", "Issues found in raw data:")
		lines = append(lines, failureLines(raw, 10)...)
	}

	lines = append(lines, "", "CLEANED DATA VALIDATION:", sectionRule)
	lines = append(lines, summaryLines(clean)...)

	if len(clean.FailedRows) > 0 {
		lines = append(lines, "", "Issues remaining after cleaning:")
		lines = append(lines, failureLines(clean, 10)...)
	} else {
		lines = append(lines, "[OK] All data validated successfully!")
	}

	return strings.Join(lines, "\n")
}

// CleaningLog renders cleaning statistics as cleaning_log.txt.
func CleaningLog(stats *model.CleaningStats) string {
	lines := []string{
		"DATA CLEANING LOG",
		"=================",
		"",
		fmt.Sprintf("Processed: %d rows", stats.RowsProcessed),
		fmt.Sprintf("Rows dropped: %d", stats.RowsDropped),
		fmt.Sprintf("Output rows: %d", stats.RowsRemaining),
		"",
		"ACTIONS TAKEN:",
		sectionRule,
		"",
	}

	if len(stats.NormalizationActions) > 0 {
		lines = append(lines, "Normalization:")
		// Fixed category order keeps the log deterministic.
		for _, category := range []string{
			model.ActionPhoneFormat,
			model.ActionDateFormat,
			model.ActionNameCase,
			model.ActionIncomeNumeric,
			model.ActionEmailLowercase,
			model.ActionAccountStatus,
		} {
			if count, ok := stats.NormalizationActions[category]; ok {
				lines = append(lines, fmt.Sprintf("  - %s: %d items affected", category, count))
			}
		}
	}

	lines = append(lines,
		"",
		"VALIDATION AFTER CLEANING:",
		sectionRule,
		"(See validation_results.txt for details)",
		"",
		"Output: customers_cleaned.csv",
		fmt.Sprintf("  - Rows: %d", stats.RowsRemaining),
		fmt.Sprintf("  - Columns: %d", len(model.Columns())),
		"",
	)

	return strings.Join(lines, "\n")
}

// PIIReport renders detection findings and exposure risk as
// pii_detection_report.txt.
func PIIReport(findings *pii.Findings, risk *pii.ExposureRisk) string {
	lines := []string{
		"PII DETECTION REPORT",
		"====================",
		"",
		"RISK ASSESSMENT:",
		sectionRule,
		"- HIGH: Names, emails, phone numbers, addresses, dates of birth",
		"- MEDIUM: Income (financial sensitivity)",
		"",
		"DETECTED PII:",
		sectionRule,
		fmt.Sprintf("- Emails found: %d (%.1f%%)", len(findings.Emails), risk.EmailCoverage),
		fmt.Sprintf("- Phone numbers found: %d (%.1f%%)", len(findings.Phones), risk.PhoneCoverage),
		fmt.Sprintf("- Addresses found: %d (%.1f%%)", len(findings.Addresses), risk.AddressCoverage),
		fmt.Sprintf("- Dates of birth found: %d (%.1f%%)", len(findings.DOBs), risk.DOBCoverage),
		fmt.Sprintf("- High-risk rows: %d", len(findings.HighRiskRows)),
		"",
		fmt.Sprintf("OVERALL RISK LEVEL: %s", risk.RiskLevel),
		"",
		"EXPOSURE RISK:",
		sectionRule,
		"If this dataset were breached, attackers could:",
	}

	if risk.EmailCoverage > 50 {
		lines = append(lines, "- Phish customers (have emails)")
	} else {
		lines = append(lines, "- Limited phishing capability (few emails)")
	}

	if risk.AddressCoverage > 50 {
		lines = append(lines, "- Spoof identities (have names + DOB + address)")
	} else {
		lines = append(lines, "- Limited identity spoofing")
	}

	if risk.PhoneCoverage > 50 {
		lines = append(lines, "- Social engineer (have phone numbers)")
	} else {
		lines = append(lines, "- Limited social engineering")
	}

	lines = append(lines,
		"",
		"MITIGATION:",
		sectionRule,
		"[OK] Masked all PII before data sharing",
		"[OK] Status: PROTECTED (safe for analytics teams)",
		"",
	)

	return strings.Join(lines, "\n")
}

// MaskedSample renders a before/after row dump plus a summary of the masking
// rules, as masked_sample.txt.
func MaskedSample(original, masked []model.Record, sampleRows int) string {
	lines := []string{
		fmt.Sprintf("BEFORE MASKING (first %d rows):", sampleRows),
		strings.Repeat("-", 80),
	}
	lines = append(lines, alignedRows(original, sampleRows)...)

	lines = append(lines,
		"",
		fmt.Sprintf("AFTER MASKING (first %d rows):", sampleRows),
		strings.Repeat("-", 80),
	)
	lines = append(lines, alignedRows(masked, sampleRows)...)

	lines = append(lines,
		"",
		"ANALYSIS:",
		strings.Repeat("-", 80),
		fmt.Sprintf("- Data structure preserved: %d rows x %d columns", len(original), len(model.Columns())),
		"- PII masked:",
		"  - Names: First letter + *** (e.g., 'J*** D***')",
		"  - Emails: First char + *** @ domain (e.g., 'j***@gmail.com')",
		"  - Phones: ***-***-XXXX where XXXX is last 4 digits",
		"  - Addresses: [MASKED ADDRESS]",
		"  - DOBs: YYYY-**-**",
		"- Business data intact: income, account_status, customer_id",
		"- Use case: Safe for analytics team (compliant with data protection regulations)",
		"",
	)

	return strings.Join(lines, "\n")
}

// ExecutionReport renders the stage-by-stage pipeline log plus the
// deliverables checklist, as pipeline_execution_report.txt.
func ExecutionReport(runID string, start time.Time, entries []string, status string) string {
	lines := []string{
		"PIPELINE EXECUTION REPORT",
		"=========================",
		fmt.Sprintf("Run ID: %s", runID),
		fmt.Sprintf("Timestamp: %s", start.Format(time.RFC3339)),
		"",
	}

	lines = append(lines, entries...)

	if status == "SUCCESS" {
		lines = append(lines,
			"",
			"DELIVERABLES CREATED:",
			sectionRule,
			"[OK] data_quality_report.txt - Data profiling results",
			"[OK] validation_results.txt - Validation outcomes",
			"[OK] cleaning_log.txt - Cleaning actions applied",
			"[OK] pii_detection_report.txt - PII exposure analysis",
			"[OK] masked_sample.txt - Before/after comparison",
			"[OK] customers_cleaned.csv - Cleaned dataset",
			"[OK] customers_masked.csv - Masked dataset",
			"[OK] pipeline_execution_report.txt - This report",
		)
	}

	lines = append(lines,
		"",
		fmt.Sprintf("STATUS: %s", status),
		"",
	)

	return strings.Join(lines, "\n")
}

// Helper functions

// summaryLines renders the totals block of one validation pass.
func summaryLines(r *validator.Report) []string {
	return []string{
		fmt.Sprintf("Total rows: %d", r.TotalRows),
		fmt.Sprintf("Passed: %d", r.PassedRows),
		fmt.Sprintf("Failed: %d", r.FailureCount),
		fmt.Sprintf("Pass rate: %.1f%%", r.PassRate),
	}
}

// failureLines renders up to limit failed rows with their issues.
func failureLines(r *validator.Report, limit int) []string {
	lines := make([]string, 0, limit)
	for _, failure := range r.FailedRows {
		if len(lines) >= limit {
			break
		}
		lines = append(lines, fmt.Sprintf("  Row %d: %s",
			failure.RowNumber, strings.Join(failure.Issues, ", ")))
	}
	return lines
}

// alignedRows renders a header plus the first n records as a column-aligned
// table. Width-aware padding keeps multi-byte values lined up.
func alignedRows(records []model.Record, n int) []string {
	if n > len(records) {
		n = len(records)
	}

	columns := model.Columns()
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for r := 0; r < n; r++ {
		for i, val := range records[r].Values() {
			if w := runewidth.StringWidth(val); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, n+1)
	lines = append(lines, joinAligned(columns, widths))
	for r := 0; r < n; r++ {
		lines = append(lines, joinAligned(records[r].Values(), widths))
	}

	return lines
}

func joinAligned(values []string, widths []int) string {
	padded := make([]string, len(values))
	for i, val := range values {
		padded[i] = padRight(val, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func columnNameWidth() int {
	width := 0
	for _, col := range model.Columns() {
		if w := runewidth.StringWidth(col); w > width {
			width = w
		}
	}
	return width
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
