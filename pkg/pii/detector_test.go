package pii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datagovern/pkg/model"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector(zap.NewNop())
	require.NoError(t, err)
	return d
}

func TestDetectTagsAllTypes(t *testing.T) {
	d := newTestDetector(t)

	records := []model.Record{
		{
			CustomerID: "1", FirstName: "John", LastName: "Doe",
			Email: "john@example.com", Phone: "555-123-4567",
			DateOfBirth: "1985-03-15", Address: "123 Main St",
		},
	}

	found := d.Detect(records)

	require.Len(t, found.Emails, 1)
	assert.Equal(t, Occurrence{2, "john@example.com"}, found.Emails[0])
	require.Len(t, found.Phones, 1)
	require.Len(t, found.Addresses, 1)
	require.Len(t, found.DOBs, 1)
	require.Len(t, found.Names, 1)
	assert.Equal(t, "John Doe", found.Names[0].Value)

	require.Len(t, found.HighRiskRows, 1)
	assert.Equal(t, 2, found.HighRiskRows[0].RowNumber)
	assert.Equal(t, 5, found.HighRiskRows[0].Count)
}

func TestDetectRequiresDigitRuns(t *testing.T) {
	d := newTestDetector(t)

	records := []model.Record{
		{CustomerID: "1", Phone: "call me", DateOfBirth: "March 5"},
	}

	found := d.Detect(records)

	assert.Empty(t, found.Phones)
	assert.Empty(t, found.DOBs)
	assert.Empty(t, found.HighRiskRows)
}

func TestDetectSlashDates(t *testing.T) {
	d := newTestDetector(t)

	records := []model.Record{
		{CustomerID: "1", DateOfBirth: "03/15/1985"},
	}

	found := d.Detect(records)
	assert.Len(t, found.DOBs, 1)
}

func TestDetectNameFromEitherField(t *testing.T) {
	d := newTestDetector(t)

	found := d.Detect([]model.Record{{CustomerID: "1", LastName: "Doe"}})
	require.Len(t, found.Names, 1)
	assert.Equal(t, " Doe", found.Names[0].Value)
}

func TestHighRiskThreshold(t *testing.T) {
	d := newTestDetector(t)

	// Exactly two PII types stays below the high-risk bar.
	records := []model.Record{
		{CustomerID: "1", Email: "a@b.com", Address: "1 Elm St"},
	}
	found := d.Detect(records)
	assert.Empty(t, found.HighRiskRows)

	// A third type crosses it.
	records[0].FirstName = "Ann"
	found = d.Detect(records)
	assert.Len(t, found.HighRiskRows, 1)
}

func TestCalculateExposureRisk(t *testing.T) {
	d := newTestDetector(t)

	full := []model.Record{
		{CustomerID: "1", FirstName: "John", Email: "j@x.com", Phone: "555-123-4567", Address: "1 Elm"},
		{CustomerID: "2", FirstName: "Mary", Email: "m@x.com", Phone: "555-234-5678", Address: "2 Elm"},
	}
	found := d.Detect(full)
	risk := d.CalculateExposureRisk(len(full), found)

	assert.Equal(t, "CRITICAL", risk.RiskLevel)
	assert.Equal(t, 2, risk.HighRiskCount)
	assert.InDelta(t, 100.0, risk.EmailCoverage, 0.001)
	assert.InDelta(t, 100.0, risk.PhoneCoverage, 0.001)
	assert.Zero(t, risk.DOBCoverage)
}

func TestCalculateExposureRiskSparse(t *testing.T) {
	d := newTestDetector(t)

	records := []model.Record{
		{CustomerID: "1", Email: "a@b.com"},
		{CustomerID: "2"},
		{CustomerID: "3"},
	}
	found := d.Detect(records)
	risk := d.CalculateExposureRisk(len(records), found)

	// No high-risk rows, but detected PII still floors the level at HIGH.
	assert.Equal(t, "HIGH", risk.RiskLevel)
	assert.InDelta(t, 33.333, risk.EmailCoverage, 0.01)
}

func TestCalculateExposureRiskEmptyDataset(t *testing.T) {
	d := newTestDetector(t)

	risk := d.CalculateExposureRisk(0, &Findings{})
	assert.Zero(t, risk.EmailCoverage)
	assert.Equal(t, "HIGH", risk.RiskLevel)
}
