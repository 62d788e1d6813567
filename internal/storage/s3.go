package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Ensure S3Writer implements ReportWriter at compile time
var _ ReportWriter = (*S3Writer)(nil)

// ObjectPutter is the part of the S3 client used to upload reports
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer uploads reports to an S3 bucket
type S3Writer struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Writer creates an S3Writer using the default AWS credential chain
func NewS3Writer(ctx context.Context, region, bucket, prefix string) (*S3Writer, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3WriterWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewS3WriterWithClient creates an S3Writer around an existing client
func NewS3WriterWithClient(client ObjectPutter, bucket, prefix string) *S3Writer {
	return &S3Writer{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Key returns the object key a report path is uploaded to
func (w *S3Writer) Key(reportPath string) string {
	key := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(reportPath, "\\", "/")), "/")
	return w.prefix + key
}

// Write uploads data to the bucket
func (w *S3Writer) Write(ctx context.Context, reportPath string, data []byte) error {
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(w.Key(reportPath)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/xml"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}
