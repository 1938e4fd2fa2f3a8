package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"pdf-collab-api/config"
)

const (
	putTimeout    = 30 * time.Second
	presignExpiry = 15 * time.Minute
)

type Client struct {
	logger  *zap.Logger
	client  *awss3.Client
	presign *awss3.PresignClient
	region  string
	bucket  string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.BaseEndpoint != "" {
			// MinIO and other S3-compatible stores
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 client initialized", zap.String("bucket", cfg.BucketUploads))

	return &Client{
		logger:  logger,
		client:  client,
		presign: awss3.NewPresignClient(client),
		region:  cfg.Region,
		bucket:  cfg.BucketUploads,
	}, nil
}

// PutObject streams body to the uploads bucket under key. The write is
// bounded by putTimeout on top of the request context.
func (c *Client) PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	ctx, cancel := context.WithTimeout(ctx, putTimeout)
	defer cancel()

	_, err := c.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("s3 put object %q: %w", key, err)
	}

	return nil
}

func (c *Client) PresignDownloadURL(ctx context.Context, key string) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign get %q: %w", key, err)
	}

	return req.URL, nil
}

func (c *Client) GetPublicURL(key string) string {
	if c.region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func (c *Client) GetBucket() string { return c.bucket }
