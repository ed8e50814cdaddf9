package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for the AWS SDK so tests can stub presigning without a live
// endpoint.
var (
	loadAWSConfig = awsconfig.LoadDefaultConfig

	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newPresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Options configures the evidence bucket connection. Works with AWS
// and any S3-compatible endpoint (MinIO in development).
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// S3EvidenceStore implements EvidenceStore on an S3 bucket.
type S3EvidenceStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3EvidenceStore(ctx context.Context, opts S3Options) (*S3EvidenceStore, error) {
	cfg, err := loadAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey, opts.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := newS3Client(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &S3EvidenceStore{
		client:  client,
		presign: newPresignClient(client),
		bucket:  opts.Bucket,
	}, nil
}

func (s *S3EvidenceStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("evidence upload failed: %w", err)
	}
	return nil
}

func (s *S3EvidenceStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign evidence url: %w", err)
	}
	return req.URL, nil
}

func (s *S3EvidenceStore) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("evidence bucket listing failed: %w", err)
	}
	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}
