package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/arzan03/doctasks/internal/runner"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// ObjectPutter is the part of the MinIO client the sink needs.
type ObjectPutter interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ReportSink uploads run reports as JSON objects.
type ReportSink struct {
	client ObjectPutter
	bucket string
}

// NewMinioClient connects to a MinIO (or S3 compatible) endpoint.
func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	return client, nil
}

func NewReportSink(client ObjectPutter, bucket string) *ReportSink {
	return &ReportSink{client: client, bucket: bucket}
}

// EnsureBucket creates the report bucket if it does not exist.
func (s *ReportSink) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	log.Info().Str("bucket", s.bucket).Msg("created bucket")
	return nil
}

// ObjectName is the key a report is stored under.
func ObjectName(report *runner.Report) string {
	return fmt.Sprintf("%s/%s.json", report.Started.UTC().Format("2006-01-02"), report.RunID)
}

// Upload stores report and returns its object name.
func (s *ReportSink) Upload(ctx context.Context, report *runner.Report) (string, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return "", err
	}

	name := ObjectName(report)
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	log.Info().Str("bucket", s.bucket).Str("object", name).Msg("uploaded run report")
	return name, nil
}
