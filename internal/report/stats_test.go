package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline-mro/wpaudit/internal/validator/order"
	"github.com/skyline-mro/wpaudit/internal/validator/reference"
)

func sampleStats() Stats {
	states := []reference.State{
		reference.StateValid,
		reference.StateValid,
		reference.StateNotApplicable,
		reference.StateMissingReference,
		reference.StateMissingRevision,
	}
	summaries := []order.GroupSummary{
		{WorkOrderID: "WO-1", Status: order.StatusOK},
		{WorkOrderID: "WO-2", Status: order.StatusViolations, Violations: 2},
	}
	return Collect("WP-2025-014", states, nil, summaries)
}

func TestCollect(t *testing.T) {
	s := sampleStats()

	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 2, s.Valid)
	assert.Equal(t, 1, s.NotApplicable)
	assert.Equal(t, 1, s.MissingReference)
	assert.Equal(t, 1, s.MissingRevision)
	assert.Equal(t, 2, s.WorkOrders)
	assert.Equal(t, 2, s.OrderViolations)
	assert.Equal(t, 4, s.Findings())
	assert.InDelta(t, 40.0, s.ErrorRate, 0.01)
	require.NoError(t, s.Reconcile())
}

func TestReconcileDetectsMismatch(t *testing.T) {
	s := sampleStats()
	s.Rows++
	assert.Error(t, s.Reconcile())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	sampleStats().WriteText(&buf)

	out := buf.String()
	assert.Contains(t, out, "WP: WP-2025-014")
	assert.Contains(t, out, "ERROR: missing reference rows=1")
	assert.Contains(t, out, "ERROR: missing revision rows=1")
	assert.Contains(t, out, "ERROR: out-of-order steps=2")
	assert.Contains(t, out, "SUMMARY: rows=5 work_orders=2 findings=4")
}

func TestWriteTextCleanRun(t *testing.T) {
	var buf bytes.Buffer
	Collect("WP-1", []reference.State{reference.StateValid}, nil, nil).WriteText(&buf)

	out := buf.String()
	assert.NotContains(t, out, "ERROR:")
	assert.Contains(t, out, "findings=0")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleStats().WriteJSON(&buf))

	var decoded Stats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleStats(), decoded)
}
