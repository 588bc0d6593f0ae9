// Package testutil provides shared test helpers for creating config files and session table fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/session"
)

// SetupTestConfig creates a minimal config file whose data file and report
// directory live under tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`storage:
  data_file: %s
student:
  name: Test Student
view:
  limit: 5
outputs:
  report_directory: %s
`,
		DataFilePath(tmpDir),
		filepath.Join(tmpDir, "outputs", "report"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// DataFilePath returns the data file configured by SetupTestConfig.
func DataFilePath(tmpDir string) string {
	return filepath.Join(tmpDir, "data.csv")
}

// SampleSessions returns sessions with distinct dates and ratings, in stored order.
func SampleSessions() []session.Record {
	return []session.Record{
		{Date: "01/01/2024", Content: "Fractions", Strengths: "Quick mental math", Improvements: "Simplifying", Rating: session.RatingGood},
		{Date: "15/01/2024", Content: "Decimals", Strengths: "Focused", Improvements: "", Rating: session.RatingExcellent},
		{Date: "10/01/2024", Content: "Fraction word problems", Strengths: "", Improvements: "Reading the question", Rating: session.RatingFair},
	}
}

// WriteSessionCSV writes records as a session table at path.
func WriteSessionCSV(t *testing.T, path string, records []session.Record) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	require.NoError(t, session.WriteCSV(f, records))
}

// WriteLegacyCSV writes a table with the Vietnamese headers and labels of the
// first version of the log, without the two feedback columns.
func WriteLegacyCSV(t *testing.T, path string) {
	t.Helper()

	content := "\ufeffNgày,Nội dung học,Đánh giá\n" +
		"01/01/2024,Phân số,Tốt\n" +
		"15/01/2024,Số thập phân,Xuất sắc\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
