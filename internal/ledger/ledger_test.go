package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanned_sites.log")
	l, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestAppendAndContains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanned_sites.log")
	l, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, l.Append("https://x.com/job/1"))
	require.NoError(t, l.Append("https://x.com/job/2"))
	require.NoError(t, l.Append("https://x.com/job/1")) // duplicate append is a no-op

	assert.True(t, l.Contains("https://x.com/job/1"))
	assert.False(t, l.Contains("https://x.com/job/3"))
	assert.Equal(t, 2, l.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/job/1\nhttps://x.com/job/2\n", string(data))
}

func TestLedgerSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanned_sites.log")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Append("https://x.com/job/1"))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.True(t, reopened.Contains("https://x.com/job/1"))
}

func TestRemovePrunesLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanned_sites.log")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Append("https://x.com/job/1"))
	require.NoError(t, l.Append("https://x.com/job/2"))

	require.NoError(t, l.Remove("https://x.com/job/1"))
	assert.False(t, l.Contains("https://x.com/job/1"))
	assert.True(t, l.Contains("https://x.com/job/2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/job/2\n", string(data))

	// removing an unknown URL is harmless
	require.NoError(t, l.Remove("https://x.com/job/9"))
}
