// Package blob stores uploaded files in S3-compatible object storage.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the subset of the S3 client used by Store.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ API = (*s3.Client)(nil)

// Store writes objects into a single bucket.
type Store struct {
	api  API
	opts Options
	log  *slog.Logger
}

// New wraps an existing API implementation.
func New(api API, opts Options, logger *slog.Logger) *Store {
	return &Store{
		api:  api,
		opts: opts,
		log:  logger.With("adapter", "blob"),
	}
}

// Open parses the storage connection string and builds an S3 client for it.
func Open(ctx context.Context, connString string, logger *slog.Logger) (*Store, error) {
	opts, err := ParseConnString(connString)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})

	return New(client, opts, logger), nil
}

// Bucket returns the target bucket name.
func (s *Store) Bucket() string {
	return s.opts.Bucket
}

// Put uploads data under key and returns the object URL.
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("blob: put %s/%s: %w", s.opts.Bucket, key, err)
	}

	s.log.DebugContext(ctx, "object stored",
		slog.String("bucket", s.opts.Bucket),
		slog.String("key", key),
		slog.Int("size", len(data)),
	)

	return s.opts.ObjectURL(key), nil
}
