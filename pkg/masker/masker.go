// pkg/masker/masker.go
package masker

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"datagovern/pkg/model"
)

// maskRules maps each PII-bearing column to its masking transform. Columns
// absent from this registry (customer_id, income, account_status,
// created_date) pass through untouched: masking must never alter
// business-analytic fields.
var maskRules = map[string]func(string) string{
	model.ColFirstName:   MaskName,
	model.ColLastName:    MaskName,
	model.ColEmail:       MaskEmail,
	model.ColPhone:       MaskPhone,
	model.ColAddress:     MaskAddress,
	model.ColDateOfBirth: MaskDOB,
}

// PIIMasker produces a structurally identical, de-identified copy of a
// dataset. All transforms are deterministic: identical input yields
// byte-identical output.
type PIIMasker struct {
	logger *zap.Logger
}

// NewPIIMasker creates a new PIIMasker instance.
func NewPIIMasker(logger *zap.Logger) (*PIIMasker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &PIIMasker{logger: logger}, nil
}

// Mask applies the masking registry to every record and returns a new
// dataset. The input is not modified.
func (m *PIIMasker) Mask(records []model.Record) []model.Record {
	m.logger.Info("Masking PII", zap.Int("rows", len(records)))

	masked := make([]model.Record, len(records))
	copy(masked, records)

	for i := range masked {
		for _, col := range model.Columns() {
			if rule, ok := maskRules[col]; ok {
				masked[i].Set(col, rule(masked[i].Get(col)))
			}
		}
	}

	m.logger.Info("PII masking complete")

	return masked
}

// MaskName masks a name token by token: John Doe becomes J*** D***.
func MaskName(name string) string {
	if isMissingOrUnknown(name) {
		return model.Unknown
	}

	parts := strings.Fields(strings.TrimSpace(name))
	masked := make([]string, 0, len(parts))

	for _, part := range parts {
		if len([]rune(part)) > 1 {
			masked = append(masked, string([]rune(part)[0])+"***")
		} else {
			masked = append(masked, "*")
		}
	}

	return strings.Join(masked, " ")
}

// MaskEmail masks the local part and keeps the domain:
// john.doe@gmail.com becomes j***@gmail.com.
func MaskEmail(email string) string {
	if isMissingOrUnknown(email) {
		return model.Unknown
	}

	trimmed := strings.ToLower(strings.TrimSpace(email))

	at := strings.Index(trimmed, "@")
	if at < 0 {
		return trimmed
	}

	local, domain := trimmed[:at], trimmed[at+1:]
	if len([]rune(local)) > 1 {
		return fmt.Sprintf("%s***@%s", string([]rune(local)[0]), domain)
	}
	return fmt.Sprintf("*@%s", domain)
}

// MaskPhone keeps the last four digits: 555-123-4567 becomes ***-***-4567.
func MaskPhone(phone string) string {
	if isMissingOrUnknown(phone) {
		return model.Unknown
	}

	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) >= 4 {
		return "***-***-" + d[len(d)-4:]
	}

	return "***-***-****"
}

// MaskAddress retains no information: every input becomes [MASKED ADDRESS].
func MaskAddress(_ string) string {
	return model.MaskedAddress
}

// MaskDOB keeps only the year: 1985-03-15 becomes 1985-**-**. Values not in
// year-first form are fully masked.
func MaskDOB(dob string) string {
	if isMissingOrUnknown(dob) {
		return model.Unknown
	}

	trimmed := strings.TrimSpace(dob)
	if len(trimmed) >= 5 && trimmed[4] == '-' && countLeadingDigits(trimmed) == 4 {
		return trimmed[:4] + "-**-**"
	}

	return "****-**-**"
}

func countLeadingDigits(s string) int {
	count := 0
	for _, r := range s {
		if !unicode.IsDigit(r) {
			break
		}
		count++
	}
	return count
}

func isMissingOrUnknown(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "" || strings.EqualFold(trimmed, model.Unknown)
}
