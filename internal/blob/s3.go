package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures the S3 (or MinIO) backend.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, e.g. a MinIO URL
	PathStyle       bool
	AccessKeyID     string // optional, falls back to the default credential chain
	SecretAccessKey string
	// PublicURL overrides the object URL prefix, e.g. a CDN in front of the bucket.
	PublicURL string
	// HTTPClient replaces the SDK transport.
	HTTPClient aws.HTTPClient
}

// S3 stores blobs as objects in a single bucket.
type S3 struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3 builds an S3 client from cfg.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return &S3{client: client, cfg: cfg}, nil
}

func (s *S3) Driver() Driver { return DriverS3 }

func (s *S3) URL(key string) string {
	switch {
	case s.cfg.PublicURL != "":
		return joinURL(s.cfg.PublicURL, key)
	case s.cfg.Endpoint != "":
		return joinURL(joinURL(s.cfg.Endpoint, s.cfg.Bucket), key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}

func (s *S3) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	k, err := cleanKey(key)
	if err != nil {
		return Info{}, err
	}
	// Buffered in full; uploads are capped at MAX_UPLOAD_MB by the handler.
	body, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(k),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Info{}, fmt.Errorf("s3 put %s: %w", k, err)
	}
	return Info{Key: k, Size: int64(len(body)), ContentType: opts.ContentType, URL: s.URL(k)}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", k, err)
	}
	return nil
}
