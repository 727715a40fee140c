// pkg/cleaner/normalize.go
package cleaner

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"datagovern/pkg/model"
)

// Date layouts tried in priority order. M/D is tried before D/M, so ambiguous
// dates like 03/04/2024 are interpreted month-first. This order is load-bearing
// for compatibility and must not be rearranged. Unpadded layout elements match
// both padded and unpadded components, so 3/4/1988 parses like 03/04/1988.
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"1-2-2006",
}

// NormalizePhone normalizes a phone number to XXX-XXX-XXXX format.
// Inputs with fewer than 10 digits are returned unchanged; missing values
// become the [UNKNOWN] sentinel.
func NormalizePhone(raw string) string {
	if isMissing(raw) {
		return model.Unknown
	}

	digits := digitsOnly(raw)

	switch {
	case len(digits) == 10:
		return formatPhone(digits)
	case len(digits) == 11 && digits[0] == '1':
		return formatPhone(digits[1:])
	case len(digits) > 10:
		return formatPhone(digits[len(digits)-10:])
	default:
		// Too short to reformat with confidence.
		return raw
	}
}

// NormalizeDate normalizes a date to YYYY-MM-DD. The second return value is
// false when the input is missing or matches no known layout.
func NormalizeDate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	lowered := strings.ToLower(trimmed)
	if lowered == "invalid_date" || lowered == "nan" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}

	return "", false
}

// NormalizeName trims and title-cases a name. Missing values become the
// [UNKNOWN] sentinel, which is passed through unchanged on reentry.
func NormalizeName(raw string) string {
	if isMissing(raw) {
		return model.Unknown
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == model.Unknown {
		return model.Unknown
	}

	parts := strings.Fields(trimmed)
	for i, part := range parts {
		parts[i] = titleCase(part)
	}

	return strings.Join(parts, " ")
}

// NormalizeEmail trims and lowercases an email address. No format correction
// is attempted beyond case and whitespace.
func NormalizeEmail(raw string) string {
	if isMissing(raw) {
		return model.Unknown
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == model.Unknown {
		return model.Unknown
	}

	return strings.ToLower(trimmed)
}

// NormalizeIncome parses an income value into a whole number, stripping
// currency symbols and separators. Unparseable values become 0.
func NormalizeIncome(raw string) int {
	if isMissing(raw) {
		return 0
	}

	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}

	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}

	return int(parsed)
}

// NormalizeAccountStatus maps a status onto the closed set
// active/inactive/suspended, with everything else collapsing to unknown.
func NormalizeAccountStatus(raw string) string {
	if isMissing(raw) {
		return model.StatusUnknown
	}

	status := strings.ToLower(strings.TrimSpace(raw))
	switch status {
	case "active", "inactive", "suspended":
		return status
	default:
		return model.StatusUnknown
	}
}

func formatPhone(digits string) string {
	return fmt.Sprintf("%s-%s-%s", digits[0:3], digits[3:6], digits[6:10])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func titleCase(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func isMissing(s string) bool {
	return strings.TrimSpace(s) == ""
}
