package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the S3 operations used by S3Gateway.
// The interface allows mocking in tests without a real bucket.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Ensure *s3.Client implements S3API
var _ S3API = (*s3.Client)(nil)

// S3Gateway reads maintenance exports from an S3 bucket.
// Bucket layout: s3://<bucket>/<prefix>/exports/<file> for inputs and
// s3://<bucket>/<prefix>/reports/<file> for annotated output.
type S3Gateway struct {
	client S3API
	bucket string
	prefix string // optional key prefix, e.g. "mro/prod"
}

// S3Config holds S3 gateway configuration.
type S3Config struct {
	Bucket string
	Prefix string
	Region string // AWS region (optional, uses default if empty)
}

// NewS3Gateway creates an S3 gateway using the ambient AWS configuration.
func NewS3Gateway(ctx context.Context, cfg S3Config) (*S3Gateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}

	return &S3Gateway{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// NewS3GatewayWithClient creates an S3 gateway with a custom client.
// This is primarily used for testing with mock S3 clients.
func NewS3GatewayWithClient(client S3API, bucket, prefix string) *S3Gateway {
	return &S3Gateway{client: client, bucket: bucket, prefix: prefix}
}

// ListExports lists objects under <prefix>/exports/.
func (g *S3Gateway) ListExports(ctx context.Context) ([]ExportInfo, error) {
	prefix := g.buildKey("exports") + "/"

	var exports []ExportInfo
	var token *string
	for {
		out, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(g.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", g.bucket, prefix, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix { // the "directory" placeholder object
				continue
			}
			exports = append(exports, ExportInfo{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}
	return exports, nil
}

// FetchExport downloads one export object by key.
func (g *S3Gateway) FetchExport(ctx context.Context, key string) ([]byte, error) {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download s3://%s/%s: %w", g.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", g.bucket, key, err)
	}
	return data, nil
}

// StoreReport uploads an annotated workbook under <prefix>/reports/.
func (g *S3Gateway) StoreReport(ctx context.Context, key string, data []byte, contentType string) error {
	full := g.buildKey("reports", key)
	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(full),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", g.bucket, full, err)
	}
	return nil
}

func (g *S3Gateway) buildKey(parts ...string) string {
	if g.prefix != "" {
		parts = append([]string{g.prefix}, parts...)
	}
	return path.Join(parts...)
}
