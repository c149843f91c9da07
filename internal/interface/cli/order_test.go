package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outOfOrderCSV = `WP,WO,WORKSTEP,SEQ,wo_text_action.header,wo_text_action.text,DES,ACTION_DATE,ACTION_TIME
WP-1,WO-1,1,1.1,SET UP,GET ACCESS,,03.01.2025,10:00
WP-1,WO-1,2,1.2,SET UP,OPEN PANEL,,03.01.2025,09:00
WP-1,WO-2,1,1.1,SET UP,GET ACCESS,,03.01.2025,08:00
WP-1,WO-2,2,1.2,SET UP,OPEN PANEL,,03.01.2025,08:30
`

func TestOrderDetectsViolation(t *testing.T) {
	in := writeCSV(t, outOfOrderCSV)

	out, err := execute(t, "order", "--in", in)
	require.Error(t, err)
	assert.Contains(t, out, "WO-1: VIOLATIONS")
	assert.Contains(t, out, "WO-2: OK")
	assert.Contains(t, out, "earlier than step(s) 1")
	assert.Contains(t, out, "SUMMARY: 2 work orders, 1 violations")
}

func TestOrderCleanExport(t *testing.T) {
	in := writeCSV(t, cleanCSV)

	out, err := execute(t, "order", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, out, "WO-1001: OK")
}

func TestOrderJSONOutput(t *testing.T) {
	in := writeCSV(t, outOfOrderCSV)

	out, err := execute(t, "order", "--in", in, "--format", "json", "--all")
	require.Error(t, err) // violations still fail the command
	assert.Contains(t, out, `"work_orders"`)
	assert.Contains(t, out, `"steps"`)
	assert.Contains(t, out, `"VIOLATIONS"`)
}

func TestOrderMissingInput(t *testing.T) {
	_, err := execute(t, "order", "--in", filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
