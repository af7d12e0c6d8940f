// Package snapshot exports board snapshots to S3-compatible object storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/models"
)

// ErrBucketNotFound indicates that the configured bucket does not exist
var ErrBucketNotFound = errors.New("bucket does not exist")

// ObjectAPI is the subset of the S3 client the exporter needs
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// NewS3Client initializes an S3 client using the provided configuration.
// It is compatible with MinIO and other S3-compatible services; an empty
// endpoint uses the AWS default for the region.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	if cfg.Endpoint != "" {
		if _, err := url.ParseRequestURI(cfg.Endpoint); err != nil {
			return nil, fmt.Errorf("invalid S3 endpoint: %w", err)
		}
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// Exporter writes board snapshots as JSON objects
type Exporter struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewExporter creates an exporter writing under prefix in bucket
func NewExporter(client ObjectAPI, bucket, prefix string) *Exporter {
	return &Exporter{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key a board's snapshot is stored under
func (e *Exporter) Key(boardID int) string {
	return e.prefix + path.Join("boards", strconv.Itoa(boardID)+".json")
}

// Export uploads the snapshot and returns the object key it was written to.
// A later export of the same board overwrites the earlier one.
func (e *Exporter) Export(ctx context.Context, snap *models.BoardSnapshot) (string, error) {
	if snap == nil {
		return "", errors.New("nil snapshot")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding board json: %w", err)
	}

	key := e.Key(snap.Board.ID)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error saving board %d to S3: %w", snap.Board.ID, err)
	}
	return key, nil
}

// EnsureBucket checks that the exporter's bucket is reachable
func (e *Exporter) EnsureBucket(ctx context.Context) error {
	_, err := e.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(e.bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchBucket") {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, e.bucket)
		}
		return fmt.Errorf("error checking bucket: %w", err)
	}
	return nil
}
