// pkg/model/cleaning.go
package model

// Normalization categories tracked by the cleaner. The names appear verbatim
// in cleaning_log.txt.
const (
	ActionPhoneFormat    = "phone_format"
	ActionDateFormat     = "date_format"
	ActionNameCase       = "name_case"
	ActionIncomeNumeric  = "income_numeric"
	ActionEmailLowercase = "email_lowercase"
	ActionAccountStatus  = "account_status"
)

// CleaningStats summarizes a single cleaner invocation.
type CleaningStats struct {
	RowsProcessed        int
	RowsDropped          int
	RowsRemaining        int
	NormalizationActions map[string]int
}

// NewCleaningStats initializes stats for a run over rowsProcessed rows.
func NewCleaningStats(rowsProcessed int) *CleaningStats {
	return &CleaningStats{
		RowsProcessed:        rowsProcessed,
		NormalizationActions: make(map[string]int),
	}
}

// RecordAction increments the change count for a normalization category.
func (s *CleaningStats) RecordAction(category string, count int) {
	if count > 0 {
		s.NormalizationActions[category] += count
	}
}
