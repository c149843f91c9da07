package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGatewayListAndFetch(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := filepath.Join("data", "store")
	require.NoError(t, fs.MkdirAll(filepath.Join(base, "exports"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(base, "exports", "wp.csv"), []byte("a;b\n1;2\n"), 0o644))
	require.NoError(t, fs.MkdirAll(filepath.Join(base, "exports", "archive"), 0o755))

	g := NewLocalGateway(fs, base)
	ctx := context.Background()

	exports, err := g.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, exports, 1) // subdirectories are skipped
	assert.Equal(t, filepath.Join("exports", "wp.csv"), exports[0].Key)
	assert.Equal(t, int64(8), exports[0].Size)

	data, err := g.FetchExport(ctx, exports[0].Key)
	require.NoError(t, err)
	assert.Equal(t, []byte("a;b\n1;2\n"), data)
}

func TestLocalGatewayListMissingDir(t *testing.T) {
	g := NewLocalGateway(afero.NewMemMapFs(), "nowhere")

	exports, err := g.ListExports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, exports)
}

func TestLocalGatewayStoreReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := NewLocalGateway(fs, "store")

	err := g.StoreReport(context.Background(), "checked.xlsx", []byte("annotated"), "application/octet-stream")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, filepath.Join("store", "reports", "checked.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []byte("annotated"), data)
}
