package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-scroop-automation/internal/pipeline"
)

var sampleJobs = []pipeline.RatedJob{
	{URL: "https://x.com/job/1", Rating: 9, Summary: "Requires MongoDB and JavaScript."},
	{URL: "https://x.com/job/2", Rating: 4, Summary: "Requires COBOL."},
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, sampleJobs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Timestamp,Job Match Rating,Link", lines[0])
	assert.Contains(t, lines[1], "9,https://x.com/job/1")
}

func TestWriteSummariesAppliesThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteSummaries(path, sampleJobs, 8))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "9 -- https://x.com/job/1")
	assert.Contains(t, string(data), "Requires MongoDB")
	assert.NotContains(t, string(data), "COBOL")
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleJobs)
	require.NoError(t, err)
	assert.Contains(t, html, "https://x.com/job/1")
	assert.Contains(t, html, "Requires MongoDB and JavaScript.")
	assert.Contains(t, html, "<table>")
}

func TestFilename(t *testing.T) {
	name := Filename("job_search", "csv")
	assert.True(t, strings.HasPrefix(name, "job_search_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
