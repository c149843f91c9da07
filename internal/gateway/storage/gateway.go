// Package storage retrieves maintenance log exports from a remote or
// local store and publishes annotated review workbooks back to it.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ExportInfo describes one log export available in the store.
type ExportInfo struct {
	Key          string    // object key or file path relative to the store root
	Size         int64     // size in bytes
	LastModified time.Time // upload or modification time
}

// Gateway abstracts the store that holds maintenance system exports.
// Implementations exist for S3 buckets and for the local filesystem.
type Gateway interface {
	// ListExports enumerates exports under the store's configured prefix.
	ListExports(ctx context.Context) ([]ExportInfo, error)

	// FetchExport downloads one export by key.
	FetchExport(ctx context.Context, key string) ([]byte, error)

	// StoreReport uploads an annotated review workbook.
	StoreReport(ctx context.Context, key string, data []byte, contentType string) error
}

// FetchLatest downloads the most recently modified export whose key ends
// with one of the given suffixes. Suffix matching is case-insensitive; an
// empty suffix list matches every export.
func FetchLatest(ctx context.Context, g Gateway, suffixes ...string) (string, []byte, error) {
	exports, err := g.ListExports(ctx)
	if err != nil {
		return "", nil, err
	}

	var latest *ExportInfo
	for i := range exports {
		e := &exports[i]
		if !matchesSuffix(e.Key, suffixes) {
			continue
		}
		if latest == nil || e.LastModified.After(latest.LastModified) {
			latest = e
		}
	}
	if latest == nil {
		return "", nil, fmt.Errorf("no export found matching %v", suffixes)
	}

	data, err := g.FetchExport(ctx, latest.Key)
	if err != nil {
		return "", nil, err
	}
	return latest.Key, data, nil
}

func matchesSuffix(key string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	lower := strings.ToLower(key)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
