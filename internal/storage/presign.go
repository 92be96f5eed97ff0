// Package storage issues pre-signed S3 upload URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/sh3r4rd/upload_url/internal/config"
)

// Presigner issues a URL that lets the holder PUT one object without
// credentials until it expires.
type Presigner interface {
	PresignPut(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

// putObjectPresigner is the subset of *s3.PresignClient S3Presigner uses.
type putObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// SigningError reports a failed presign call.
type SigningError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("presign put s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// Code returns the service error code (e.g. "AccessDenied") when the cause
// is an API error, and an empty string otherwise.
func (e *SigningError) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// S3Presigner signs PUT requests with the S3 presign client.
type S3Presigner struct {
	client putObjectPresigner
}

// NewS3Presigner wraps an existing presign client.
func NewS3Presigner(client putObjectPresigner) *S3Presigner {
	return &S3Presigner{client: client}
}

// NewS3PresignerFromConfig builds the S3 client from cfg. Region and
// credentials fall back to the SDK default chain when not set.
func NewS3PresignerFromConfig(ctx context.Context, cfg config.Config) (*S3Presigner, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3Presigner(s3.NewPresignClient(client)), nil
}

// PresignPut returns a URL for uploading bucket/key with an HTTP PUT.
func (p *S3Presigner) PresignPut(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", &SigningError{Bucket: bucket, Key: key, Err: err}
	}
	return req.URL, nil
}
