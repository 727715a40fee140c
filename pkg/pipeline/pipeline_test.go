package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datagovern/pkg/config"
	"datagovern/pkg/model"
)

func testConfig(t *testing.T, inputCSV string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.InputCSV = inputCSV
	cfg.Paths.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func writeInputCSV(t *testing.T, records []model.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers_raw.csv")
	require.NoError(t, WriteCSV(path, records))
	return path
}

func rawRecords() []model.Record {
	return []model.Record{
		{
			CustomerID: "1", FirstName: "john", LastName: "doe",
			Email: "John.Doe@GMAIL.com", Phone: "5551234567",
			DateOfBirth: "01/15/1985", Address: "123 Main St",
			Income: "$52,000.00", AccountStatus: "Active",
			CreatedDate: "2024-01-15",
		},
		{
			CustomerID: "2", FirstName: "mary", LastName: "smith",
			Email: "mary@example.com", Phone: "(555) 234-5678",
			DateOfBirth: "1990-06-02", Address: "456 Oak Ave",
			Income: "85000", AccountStatus: "suspended",
			CreatedDate: "2024-02-01",
		},
		{
			CustomerID: "3", FirstName: "Bob", LastName: "Jones",
			Email: "bob@test.org", Phone: "555-987-6543",
			DateOfBirth: "invalid_date", Address: "789 Pine Rd",
			Income: "61000", AccountStatus: "inactive",
			CreatedDate: "2024-03-10",
		},
		{
			CustomerID: "4", FirstName: "ALICE", LastName: "brown",
			Email: "alice@test.org", Phone: "1-555-111-2222",
			DateOfBirth: "1975-12-30", Address: "321 Elm St",
			Income: "49999.99", AccountStatus: "active",
			CreatedDate: "2024-04-05",
		},
	}
}

func TestLoadCSVRoundTrip(t *testing.T) {
	path := writeInputCSV(t, rawRecords())

	header, records, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, model.Columns(), header)
	require.Len(t, records, 4)
	assert.Equal(t, rawRecords(), records)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, _, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestExecuteProducesAllOutputs(t *testing.T) {
	cfg := testConfig(t, writeInputCSV(t, rawRecords()))

	p, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, p.Execute())

	for _, name := range []string{
		FileCleanedCSV,
		FileMaskedCSV,
		FileQualityReport,
		FileValidation,
		FileCleaningLog,
		FilePIIReport,
		FileMaskedSample,
		FileExecutionReport,
	} {
		_, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, name))
		assert.NoError(t, err, name)
	}
}

func TestExecuteCleansAndMasks(t *testing.T) {
	cfg := testConfig(t, writeInputCSV(t, rawRecords()))

	p, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, p.Execute())

	_, cleaned, err := LoadCSV(filepath.Join(cfg.Paths.OutputDir, FileCleanedCSV))
	require.NoError(t, err)

	// The invalid_date row is dropped.
	require.Len(t, cleaned, 3)
	for _, rec := range cleaned {
		assert.NotEqual(t, "3", rec.CustomerID)
	}
	assert.Equal(t, "john.doe@gmail.com", cleaned[0].Email)
	assert.Equal(t, "555-123-4567", cleaned[0].Phone)
	assert.Equal(t, "1985-01-15", cleaned[0].DateOfBirth)

	_, masked, err := LoadCSV(filepath.Join(cfg.Paths.OutputDir, FileMaskedCSV))
	require.NoError(t, err)

	require.Len(t, masked, 3)
	for _, rec := range masked {
		assert.Equal(t, model.MaskedAddress, rec.Address)
		assert.True(t, strings.HasSuffix(rec.DateOfBirth, "-**-**"))
	}
	// Business fields survive masking.
	assert.Equal(t, "52000", masked[0].Income)
	assert.Equal(t, "active", masked[0].AccountStatus)
}

func TestExecuteWritesExecutionReport(t *testing.T) {
	cfg := testConfig(t, writeInputCSV(t, rawRecords()))

	p, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, p.Execute())

	data, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, FileExecutionReport))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "PIPELINE EXECUTION REPORT")
	assert.Contains(t, content, "Run ID: "+p.StageLog().RunID)
	for _, stage := range []string{
		StageLoad, StageProfile, StageValidateRaw, StageClean,
		StageValidateClean, StageDetectPII, StageMask, StageSave,
	} {
		assert.Contains(t, content, stage)
	}
	assert.Contains(t, content, "DELIVERABLES CREATED:")
	assert.Contains(t, content, "STATUS: SUCCESS")
}

func TestExecuteMissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "absent.csv"))

	p, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	err = p.Execute()
	require.Error(t, err)

	// A failed run still leaves an execution report behind.
	data, readErr := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, FileExecutionReport))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "STATUS: FAILED")
	assert.NotContains(t, string(data), "DELIVERABLES CREATED:")
}

func TestExecuteSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "id,name\n1,john\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := testConfig(t, path)
	p, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	err = p.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column mismatch")
}

func TestNewRequiresConfigAndLogger(t *testing.T) {
	_, err := New(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = New(config.Default(), nil)
	assert.Error(t, err)
}
