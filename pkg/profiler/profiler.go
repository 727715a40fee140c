// pkg/profiler/profiler.go
package profiler

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"datagovern/pkg/model"
)

var (
	canonicalPhone = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	canonicalDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ColumnCompleteness reports how many rows carry a non-blank value.
type ColumnCompleteness struct {
	NonEmpty int
	Percent  float64
}

// FormatIssue is one row-level quality finding.
type FormatIssue struct {
	RowNumber int
	Detail    string
}

// Uniqueness reports distinct and duplicated non-blank values in a column.
type Uniqueness struct {
	Unique     int
	Duplicates int
}

// IDRange summarizes the customer_id column.
type IDRange struct {
	Min     int
	Max     int
	Invalid int // negative IDs
	Parsed  int
}

// IncomeRange summarizes the income column over directly parseable values.
type IncomeRange struct {
	Min      float64
	Max      float64
	Negative int
	Over10M  int
	Parsed   int
}

// Profile is the read-only diagnostic output of one profiling pass.
type Profile struct {
	TotalRows       int
	TotalColumns    int
	Completeness    map[string]ColumnCompleteness
	InferredTypes   map[string]string
	PhoneIssues     []FormatIssue
	DateIssues      []FormatIssue
	CaseIssues      []FormatIssue
	Uniqueness      map[string]Uniqueness
	StatusesFound   []string
	InvalidStatuses []FormatIssue
	CustomerIDs     IDRange
	Incomes         IncomeRange
}

// TotalIssues sums the row-level findings across categories.
func (p *Profile) TotalIssues() int {
	return len(p.PhoneIssues) + len(p.DateIssues) + len(p.CaseIssues) +
		len(p.InvalidStatuses) + p.Incomes.Negative
}

// DataProfiler analyzes raw data completeness, inferred types, and quality
// issues. It never modifies the dataset.
type DataProfiler struct {
	logger *zap.Logger
}

// NewDataProfiler creates a new DataProfiler instance.
func NewDataProfiler(logger *zap.Logger) (*DataProfiler, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &DataProfiler{logger: logger}, nil
}

// Profile runs every diagnostic over the raw dataset.
func (p *DataProfiler) Profile(records []model.Record) *Profile {
	p.logger.Info("Profiling dataset", zap.Int("rows", len(records)))

	profile := &Profile{
		TotalRows:     len(records),
		TotalColumns:  len(model.Columns()),
		Completeness:  p.analyzeCompleteness(records),
		InferredTypes: inferredTypes(),
		Uniqueness:    p.checkUniqueness(records),
	}

	p.detectFormatIssues(records, profile)
	p.checkCategoricalValidity(records, profile)
	profile.CustomerIDs = p.checkCustomerIDRange(records)
	profile.Incomes = p.checkIncomeRange(records)

	p.logger.Info("Profiling complete",
		zap.Int("phoneIssues", len(profile.PhoneIssues)),
		zap.Int("dateIssues", len(profile.DateIssues)),
		zap.Int("caseIssues", len(profile.CaseIssues)),
		zap.Int("totalIssues", profile.TotalIssues()))

	return profile
}

// analyzeCompleteness calculates the non-blank percentage per column.
func (p *DataProfiler) analyzeCompleteness(records []model.Record) map[string]ColumnCompleteness {
	completeness := make(map[string]ColumnCompleteness)

	for _, col := range model.Columns() {
		nonEmpty := 0
		for _, rec := range records {
			if strings.TrimSpace(rec.Get(col)) != "" {
				nonEmpty++
			}
		}

		pct := 0.0
		if len(records) > 0 {
			pct = float64(nonEmpty) / float64(len(records)) * 100
		}

		completeness[col] = ColumnCompleteness{NonEmpty: nonEmpty, Percent: pct}
		p.logger.Debug("Column completeness",
			zap.String("column", col),
			zap.Float64("percent", pct))
	}

	return completeness
}

// inferredTypes reports what each column holds versus what it should hold.
// Everything arrives as text; date and numeric columns are flagged.
func inferredTypes() map[string]string {
	return map[string]string{
		model.ColCustomerID:    "INT",
		model.ColFirstName:     "STRING",
		model.ColLastName:      "STRING",
		model.ColEmail:         "STRING",
		model.ColPhone:         "STRING",
		model.ColDateOfBirth:   "STRING (should be DATE)",
		model.ColAddress:       "STRING",
		model.ColIncome:        "STRING (should be NUMERIC)",
		model.ColAccountStatus: "STRING",
		model.ColCreatedDate:   "STRING (should be DATE)",
	}
}

// detectFormatIssues flags phones, dates, and name casing that deviate from
// canonical form.
func (p *DataProfiler) detectFormatIssues(records []model.Record, profile *Profile) {
	for i, rec := range records {
		rowNum := i + 2

		if phone := strings.TrimSpace(rec.Phone); phone != "" && !canonicalPhone.MatchString(phone) {
			profile.PhoneIssues = append(profile.PhoneIssues, FormatIssue{rowNum, phone})
		}

		if dob := strings.TrimSpace(rec.DateOfBirth); dob != "" && !strings.EqualFold(dob, "nan") {
			if !canonicalDate.MatchString(dob) {
				profile.DateIssues = append(profile.DateIssues,
					FormatIssue{rowNum, fmt.Sprintf("date_of_birth: %s", dob)})
			}
		}

		if created := strings.TrimSpace(rec.CreatedDate); created != "" && !strings.EqualFold(created, "nan") {
			if !canonicalDate.MatchString(created) {
				profile.DateIssues = append(profile.DateIssues,
					FormatIssue{rowNum, fmt.Sprintf("created_date: %s", created)})
			}
		}

		if first := strings.TrimSpace(rec.FirstName); first != "" && first != titled(first) {
			profile.CaseIssues = append(profile.CaseIssues,
				FormatIssue{rowNum, fmt.Sprintf("first_name: %s", first)})
		}

		if last := strings.TrimSpace(rec.LastName); last != "" && last != titled(last) {
			profile.CaseIssues = append(profile.CaseIssues,
				FormatIssue{rowNum, fmt.Sprintf("last_name: %s", last)})
		}
	}

	p.logger.Info("Detected format issues",
		zap.Int("phone", len(profile.PhoneIssues)),
		zap.Int("date", len(profile.DateIssues)),
		zap.Int("case", len(profile.CaseIssues)))
}

// checkUniqueness counts distinct and duplicated non-blank values per column.
func (p *DataProfiler) checkUniqueness(records []model.Record) map[string]Uniqueness {
	uniqueness := make(map[string]Uniqueness)

	for _, col := range model.Columns() {
		seen := make(map[string]int)
		total := 0
		for _, rec := range records {
			val := strings.TrimSpace(rec.Get(col))
			if val == "" {
				continue
			}
			seen[val]++
			total++
		}

		u := Uniqueness{Unique: len(seen), Duplicates: total - len(seen)}
		uniqueness[col] = u

		if u.Duplicates > 0 {
			p.logger.Warn("Duplicates found",
				zap.String("column", col),
				zap.Int("duplicates", u.Duplicates))
		}
	}

	return uniqueness
}

// checkCategoricalValidity verifies account_status against its closed set.
func (p *DataProfiler) checkCategoricalValidity(records []model.Record, profile *Profile) {
	found := make(map[string]struct{})

	for i, rec := range records {
		raw := strings.TrimSpace(rec.AccountStatus)
		if raw == "" || strings.EqualFold(raw, "nan") {
			continue
		}

		found[raw] = struct{}{}

		status := strings.ToLower(raw)
		switch status {
		case "active", "inactive", "suspended":
		default:
			profile.InvalidStatuses = append(profile.InvalidStatuses,
				FormatIssue{i + 2, status})
		}
	}

	profile.StatusesFound = make([]string, 0, len(found))
	for status := range found {
		profile.StatusesFound = append(profile.StatusesFound, status)
	}
	sort.Strings(profile.StatusesFound)

	p.logger.Info("Categorical validity checked",
		zap.Strings("statusesFound", profile.StatusesFound),
		zap.Int("invalid", len(profile.InvalidStatuses)))
}

// checkCustomerIDRange parses customer_id values and flags negatives.
func (p *DataProfiler) checkCustomerIDRange(records []model.Record) IDRange {
	r := IDRange{}

	for _, rec := range records {
		id, err := strconv.Atoi(strings.TrimSpace(rec.CustomerID))
		if err != nil {
			continue
		}

		if r.Parsed == 0 || id < r.Min {
			r.Min = id
		}
		if r.Parsed == 0 || id > r.Max {
			r.Max = id
		}
		r.Parsed++

		if id < 0 {
			r.Invalid++
		}
	}

	return r
}

// checkIncomeRange parses income values that are already plain numbers.
// Values needing cleanup (currency symbols, separators) are left for the
// cleaner and not counted here.
func (p *DataProfiler) checkIncomeRange(records []model.Record) IncomeRange {
	r := IncomeRange{}

	for _, rec := range records {
		income, err := strconv.ParseFloat(strings.TrimSpace(rec.Income), 64)
		if err != nil {
			continue
		}

		if r.Parsed == 0 || income < r.Min {
			r.Min = income
		}
		if r.Parsed == 0 || income > r.Max {
			r.Max = income
		}
		r.Parsed++

		if income < 0 {
			r.Negative++
		}
		if income > 10_000_000 {
			r.Over10M++
		}
	}

	p.logger.Info("Value ranges analyzed",
		zap.Int("negativeIncomes", r.Negative),
		zap.Int("over10M", r.Over10M))

	return r
}

// titled title-cases whitespace-separated tokens, mirroring the cleaner's
// name normalization.
func titled(s string) string {
	parts := strings.Fields(s)
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
