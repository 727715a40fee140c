// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"datagovern/pkg/model"
)

// DataCleaner normalizes every record in a dataset and applies the row-drop
// policy for records whose date_of_birth cannot be parsed.
type DataCleaner struct {
	logger *zap.Logger
}

// NewDataCleaner creates a new DataCleaner instance.
func NewDataCleaner(logger *zap.Logger) (*DataCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &DataCleaner{logger: logger}, nil
}

// Clean normalizes all records field by field and drops records whose
// date_of_birth is unparseable. created_date unparseable values are left
// as-is: created_date is operational metadata, date_of_birth is identity
// data. The returned dataset is a new slice; the input is not modified.
func (c *DataCleaner) Clean(records []model.Record) ([]model.Record, *model.CleaningStats) {
	c.logger.Info("Starting data cleaning", zap.Int("rows", len(records)))

	stats := model.NewCleaningStats(len(records))
	cleaned := make([]model.Record, len(records))
	copy(cleaned, records)
	drop := make([]bool, len(records))

	// Phone numbers
	phoneChanges := 0
	for i := range cleaned {
		original := cleaned[i].Phone
		cleaned[i].Phone = NormalizePhone(original)
		if changed(original, cleaned[i].Phone) {
			phoneChanges++
		}
	}
	stats.RecordAction(model.ActionPhoneFormat, phoneChanges)
	if phoneChanges > 0 {
		c.logger.Info("Normalized phone numbers", zap.Int("count", phoneChanges))
	}

	// Dates: date_of_birth and created_date together
	dateChanges := 0
	unparseableDOBs := 0
	for i := range cleaned {
		dob := cleaned[i].DateOfBirth
		if normalized, ok := NormalizeDate(dob); ok {
			cleaned[i].DateOfBirth = normalized
			if changed(dob, normalized) {
				dateChanges++
			}
		} else {
			drop[i] = true
			unparseableDOBs++
			c.logger.Warn("Could not parse date_of_birth, dropping row",
				zap.Int("row", i+2),
				zap.String("value", dob))
		}

		created := cleaned[i].CreatedDate
		if normalized, ok := NormalizeDate(created); ok {
			cleaned[i].CreatedDate = normalized
			if changed(created, normalized) {
				dateChanges++
			}
		} else if !isMissing(created) {
			c.logger.Warn("Could not parse created_date, keeping original",
				zap.Int("row", i+2),
				zap.String("value", created))
		}
	}
	stats.RecordAction(model.ActionDateFormat, dateChanges)
	if dateChanges > 0 {
		c.logger.Info("Normalized dates", zap.Int("count", dateChanges))
	}

	// Names
	nameChanges := 0
	for i := range cleaned {
		first := cleaned[i].FirstName
		cleaned[i].FirstName = NormalizeName(first)
		if changed(first, cleaned[i].FirstName) {
			nameChanges++
		}

		last := cleaned[i].LastName
		cleaned[i].LastName = NormalizeName(last)
		if changed(last, cleaned[i].LastName) {
			nameChanges++
		}
	}
	stats.RecordAction(model.ActionNameCase, nameChanges)
	if nameChanges > 0 {
		c.logger.Info("Applied title case to names", zap.Int("count", nameChanges))
	}

	// Income
	incomeChanges := 0
	for i := range cleaned {
		original := cleaned[i].Income
		cleaned[i].Income = strconv.Itoa(NormalizeIncome(original))
		if changed(original, cleaned[i].Income) {
			incomeChanges++
		}
	}
	stats.RecordAction(model.ActionIncomeNumeric, incomeChanges)
	if incomeChanges > 0 {
		c.logger.Info("Normalized income values", zap.Int("count", incomeChanges))
	}

	// Email
	emailChanges := 0
	for i := range cleaned {
		original := cleaned[i].Email
		cleaned[i].Email = NormalizeEmail(original)
		if changed(original, cleaned[i].Email) {
			emailChanges++
		}
	}
	stats.RecordAction(model.ActionEmailLowercase, emailChanges)

	// Account status. Pure case fixes are not counted: the value set is
	// case-insensitive to begin with.
	statusChanges := 0
	for i := range cleaned {
		original := cleaned[i].AccountStatus
		cleaned[i].AccountStatus = NormalizeAccountStatus(original)
		if !isMissing(original) && strings.ToLower(strings.TrimSpace(original)) != cleaned[i].AccountStatus {
			statusChanges++
		}
	}
	stats.RecordAction(model.ActionAccountStatus, statusChanges)

	// Row-drop policy: a record without a usable birth date cannot pass
	// downstream validation and is removed entirely.
	out := make([]model.Record, 0, len(cleaned))
	for i, rec := range cleaned {
		if drop[i] {
			continue
		}
		out = append(out, rec)
	}

	stats.RowsDropped = len(cleaned) - len(out)
	stats.RowsRemaining = len(out)

	if stats.RowsDropped > 0 {
		c.logger.Warn("Dropped rows with unparseable date_of_birth",
			zap.Int("count", stats.RowsDropped))
	}

	c.logger.Info("Cleaning complete", zap.Int("rowsRemaining", len(out)))

	return out, stats
}

// changed reports whether normalization altered a value. Missing originals do
// not count: missing-to-sentinel substitution is not a normalization.
func changed(original, normalized string) bool {
	return original != normalized && !isMissing(original)
}
