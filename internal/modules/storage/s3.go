// Package storage wraps an S3-compatible bucket for signed direct uploads.
// The server only hands out time-limited presigned PUT targets; file bytes
// never pass through it.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/inkstream/core/internal/config"
)

// Client wraps an S3 client configured for path-style access, which covers
// R2, CEPH and other S3-compatible providers.
type Client struct {
	presigner *s3.PresignClient
	bucket    string
	endpoint  string
	publicURL string
}

// New creates the storage client. Returns (nil, nil) when the config block is
// empty so the app can start without upload support.
func New(cfg config.StorageConfig) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required when an endpoint is configured")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		presigner: s3.NewPresignClient(s3Client),
		bucket:    cfg.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// PresignPut returns a time-limited URL the browser PUTs the file to.
func (c *Client) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	out, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return out.URL, nil
}

// PublicURL returns the URL the uploaded object will be served from.
func (c *Client) PublicURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}
