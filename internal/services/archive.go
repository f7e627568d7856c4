package services

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ResumeArchive keeps a copy of every raw upload in object storage.
type ResumeArchive interface {
	// Store uploads the file at filePath and returns its object key.
	Store(ctx context.Context, key, filePath, contentType string) (string, error)
	Enabled() bool
}

type S3ArchiveConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type s3Archive struct {
	client *s3.Client
	bucket string
}

// NewS3Archive builds an archive on any S3-compatible store. Endpoint is set
// for R2 or MinIO; static keys are used when given, otherwise the default
// AWS credential chain.
func NewS3Archive(ctx context.Context, cfg S3ArchiveConfig) (ResumeArchive, error) {
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
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Archive{client: client, bucket: cfg.Bucket}, nil
}

func (a *s3Archive) Enabled() bool { return true }

func (a *s3Archive) Store(ctx context.Context, key, filePath, contentType string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for archive: %w", err)
	}
	defer f.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return key, nil
}

type noopArchive struct{}

// NewNoopArchive is used when no bucket is configured.
func NewNoopArchive() ResumeArchive { return noopArchive{} }

func (noopArchive) Enabled() bool { return false }

func (noopArchive) Store(context.Context, string, string, string) (string, error) {
	return "", nil
}
