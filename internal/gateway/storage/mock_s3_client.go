package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MockS3Client is an in-memory implementation of S3API for testing.
type MockS3Client struct {
	mu      sync.RWMutex
	objects map[string]*mockS3Object
}

type mockS3Object struct {
	content      []byte
	contentType  string
	lastModified time.Time
}

// NewMockS3Client creates a new mock S3 client.
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{objects: make(map[string]*mockS3Object)}
}

// PutObjectAt stores an object with an explicit modification time.
func (m *MockS3Client) PutObjectAt(key string, content []byte, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = &mockS3Object{content: content, lastModified: modified}
}

// PutObject simulates uploading an object.
func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	m.objects[aws.ToString(params.Key)] = &mockS3Object{
		content:      content,
		contentType:  aws.ToString(params.ContentType),
		lastModified: time.Now(),
	}
	return &s3.PutObjectOutput{}, nil
}

// GetObject simulates retrieving an object.
func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := aws.ToString(params.Key)
	obj, exists := m.objects[key]
	if !exists {
		return nil, &types.NoSuchKey{
			Message: aws.String(fmt.Sprintf("The specified key does not exist: %s", key)),
		}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(obj.content)),
		ContentType: aws.String(obj.contentType),
	}, nil
}

// ListObjectsV2 simulates listing objects by prefix. No pagination.
func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := aws.ToString(params.Prefix)
	var contents []types.Object
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			contents = append(contents, types.Object{
				Key:          aws.String(key),
				Size:         aws.Int64(int64(len(obj.content))),
				LastModified: aws.Time(obj.lastModified),
			})
		}
	}
	return &s3.ListObjectsV2Output{
		Contents:    contents,
		IsTruncated: aws.Bool(false),
	}, nil
}

// ObjectCount returns the number of stored objects.
func (m *MockS3Client) ObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Object returns the raw content of a stored object.
func (m *MockS3Client) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, exists := m.objects[key]
	if !exists {
		return nil, false
	}
	return obj.content, true
}
