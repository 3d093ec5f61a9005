package storage

import (
	"context"
	"fmt"
	"time"

	"restaurant-claims-api/lifecycle"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Presigner issues presigned PUT URLs against the verification-document
// bucket. Each URL is bound to one key and one content type and expires
// after Expiry.
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // Optional custom endpoint (for MinIO, LocalStack, etc.)
	Expiry   time.Duration
}

// NewS3Presigner creates a presigner backed by the default AWS credential
// chain.
func NewS3Presigner(ctx context.Context, cfg S3Config) (*S3Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOpts := func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO/LocalStack
		}
	}
	client := s3.NewFromConfig(awsCfg, clientOpts)

	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}

	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		expiry:  expiry,
	}, nil
}

// PresignPut returns a grant for uploading a single object. The signed
// request pins the content type, so the policy decided upstream holds at
// the bucket.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (lifecycle.UploadGrant, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return lifecycle.UploadGrant{}, fmt.Errorf("s3 presign failed: %w", err)
	}

	return lifecycle.UploadGrant{
		URL:         req.URL,
		Method:      req.Method,
		Key:         key,
		ContentType: contentType,
		ExpiresAt:   time.Now().Add(p.expiry),
	}, nil
}
