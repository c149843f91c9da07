package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLogbook(t *testing.T) *Logbook {
	t.Helper()
	lb, err := OpenLogbook(filepath.Join(t.TempDir(), "logbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lb.Close() })
	return lb
}

func TestLogbookAppendAndRecent(t *testing.T) {
	lb := openTestLogbook(t)

	stats := Stats{
		WorkPackage:      "WP-2025-014",
		Rows:             120,
		MissingReference: 3,
		MissingRevision:  5,
		OrderViolations:  1,
	}

	id, err := lb.Append(stats, "export.xlsx", 1500*time.Millisecond)
	require.NoError(t, err)
	assert.Len(t, id, 26) // ULID string form

	runs, err := lb.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "WP-2025-014", r.WorkPackage)
	assert.Equal(t, "export.xlsx", r.InputFile)
	assert.Equal(t, 120, r.Rows)
	assert.Equal(t, 3, r.MissingReference)
	assert.Equal(t, 5, r.MissingRevision)
	assert.Equal(t, 1, r.OrderViolations)
	assert.Equal(t, 1500*time.Millisecond, r.Duration)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestLogbookRecentOrderAndLimit(t *testing.T) {
	lb := openTestLogbook(t)

	for i := 0; i < 5; i++ {
		_, err := lb.Append(Stats{WorkPackage: "WP", Rows: i}, "f.csv", 0)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // distinct created_at values
	}

	runs, err := lb.Recent(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	// Newest first
	assert.Equal(t, 4, runs[0].Rows)
	assert.Equal(t, 2, runs[2].Rows)
}

func TestLogbookSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.db")

	lb, err := OpenLogbook(path)
	require.NoError(t, err)
	_, err = lb.Append(Stats{WorkPackage: "WP-1", Rows: 10}, "a.csv", time.Second)
	require.NoError(t, err)
	require.NoError(t, lb.Close())

	lb2, err := OpenLogbook(path)
	require.NoError(t, err)
	defer lb2.Close()

	runs, err := lb2.Recent(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "WP-1", runs[0].WorkPackage)
}
