package backup

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lensframe/studio-core/internal/config"
)

type s3Uploader struct {
	client *s3.Client
	bucket string
}

func newS3Uploader(opts config.S3Options) (*s3Uploader, error) {
	if opts.Bucket == "" || opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, fmt.Errorf("s3 is not configured")
	}

	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	client := s3.New(s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		UsePathStyle: opts.PathStyleAccess,
		BaseEndpoint: endpointOrNil(opts.Endpoint),
	})

	return &s3Uploader{client: client, bucket: opts.Bucket}, nil
}

func endpointOrNil(endpoint string) *string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

func (u *s3Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}
