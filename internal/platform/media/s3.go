// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/pkg/uuid"
)

// S3Config describes the bucket backing the media host.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	// PublicURL is the base under which objects are served. When empty the
	// URL is derived from the endpoint (path style) or the AWS region.
	PublicURL string
}

// objectPutter is the slice of the S3 client the uploader needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// S3Uploader stores images in an S3-compatible bucket.
type S3Uploader struct {
	client  objectPutter
	bucket  string
	baseURL string
	logger  *slog.Logger
}

// NewS3Uploader builds an uploader from cfg using the default AWS credential
// chain, overridden by static keys when both are set.
func NewS3Uploader(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("media: bucket must not be empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("media_host_configured",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region),
	)

	return newS3Uploader(client, cfg, logger), nil
}

func newS3Uploader(client objectPutter, cfg S3Config, logger *slog.Logger) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		logger:  logger,
	}
}

// publicBaseURL resolves the prefix that object keys are appended to.
func publicBaseURL(cfg S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload writes image under folder with a fresh time-ordered key. The key is
// returned as the asset's PublicID.
func (uploader *S3Uploader) Upload(ctx context.Context, folder string, image Image) (Asset, error) {
	key := strings.Trim(folder, "/") + "/" + uuid.New() + extension(image)

	_, err := uploader.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(uploader.bucket),
		Key:           aws.String(key),
		Body:          image.reader(),
		ContentType:   aws.String(image.ContentType),
		ContentLength: aws.Int64(int64(len(image.Data))),
	})
	if err != nil {
		return Asset{}, apperr.Internal(fmt.Errorf("media: put %s: %w", key, err))
	}

	uploader.logger.DebugContext(ctx, "media_uploaded",
		slog.String("key", key),
		slog.Int("bytes", len(image.Data)),
	)

	return Asset{
		URL:      uploader.baseURL + "/" + key,
		PublicID: key,
	}, nil
}
