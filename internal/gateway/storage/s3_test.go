package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3GatewayListAndFetch(t *testing.T) {
	mock := NewMockS3Client()
	mock.PutObjectAt("mro/exports/wp_2025_014.xlsx", []byte("workbook-a"), time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC))
	mock.PutObjectAt("mro/exports/wp_2025_015.csv", []byte("workbook-b"), time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC))
	mock.PutObjectAt("mro/other/readme.txt", []byte("ignored"), time.Now())

	g := NewS3GatewayWithClient(mock, "test-bucket", "mro")
	ctx := context.Background()

	exports, err := g.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, exports, 2)

	data, err := g.FetchExport(ctx, "mro/exports/wp_2025_014.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("workbook-a"), data)
}

func TestS3GatewayFetchMissingKey(t *testing.T) {
	g := NewS3GatewayWithClient(NewMockS3Client(), "test-bucket", "")

	_, err := g.FetchExport(context.Background(), "exports/absent.xlsx")
	assert.Error(t, err)
}

func TestS3GatewayStoreReport(t *testing.T) {
	mock := NewMockS3Client()
	g := NewS3GatewayWithClient(mock, "test-bucket", "mro")

	err := g.StoreReport(context.Background(), "wp_2025_014_checked.xlsx", []byte("annotated"), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	require.NoError(t, err)

	content, ok := mock.Object("mro/reports/wp_2025_014_checked.xlsx")
	require.True(t, ok)
	assert.Equal(t, []byte("annotated"), content)
}

func TestFetchLatestPicksNewestMatching(t *testing.T) {
	mock := NewMockS3Client()
	mock.PutObjectAt("exports/old.xlsx", []byte("old"), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	mock.PutObjectAt("exports/new.xlsx", []byte("new"), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	mock.PutObjectAt("exports/newest.csv", []byte("csv"), time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))

	g := NewS3GatewayWithClient(mock, "test-bucket", "")
	ctx := context.Background()

	key, data, err := FetchLatest(ctx, g, ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, "exports/new.xlsx", key)
	assert.Equal(t, []byte("new"), data)

	key, _, err = FetchLatest(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, "exports/newest.csv", key)
}

func TestFetchLatestNoMatch(t *testing.T) {
	g := NewS3GatewayWithClient(NewMockS3Client(), "test-bucket", "")

	_, _, err := FetchLatest(context.Background(), g, ".xlsx")
	assert.Error(t, err)
}
