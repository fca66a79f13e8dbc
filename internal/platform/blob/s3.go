// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// deleteBatchSize is the DeleteObjects per-request limit.
const deleteBatchSize = 1000

// S3Config configures the S3-compatible backend (AWS, R2, MinIO).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool

	// PublicBaseURL prefixes object keys in returned URLs.
	PublicBaseURL string
}

// S3 is the production [Store].
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3 builds the client from the default AWS credential chain, or from
// static keys when both are configured.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("blob: s3 bucket is required")
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		options.UsePathStyle = cfg.UsePathStyle
	})

	return &S3{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (store *S3) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := store.uploader.Upload(ctx, input); err != nil {
		return "", wrapError("upload "+key, err)
	}

	return PublicURL(store.baseURL, key), nil
}

func (store *S3) Move(ctx context.Context, oldPrefix, newPrefix string) (map[string]string, error) {
	source, target := folder(oldPrefix), folder(newPrefix)
	if source == "" || target == "" {
		return nil, errors.New("blob: move: empty prefix")
	}

	keys, err := store.list(ctx, source, true)
	if err != nil {
		return nil, err
	}

	moved := make(map[string]string, len(keys))
	for _, key := range keys {
		newKey := target + strings.TrimPrefix(key, source)

		_, err := store.client.CopyObject(ctx, &s3.CopyObjectInput{
			Bucket:     aws.String(store.bucket),
			CopySource: aws.String(store.bucket + "/" + escapeKey(key)),
			Key:        aws.String(newKey),
		})
		if err != nil {
			return moved, wrapError("copy "+key, err)
		}

		moved[PublicURL(store.baseURL, key)] = PublicURL(store.baseURL, newKey)
	}

	if err := store.deleteKeys(ctx, keys); err != nil {
		return moved, err
	}

	return moved, nil
}

func (store *S3) DeleteFolder(ctx context.Context, prefix string) error {
	dir := folder(prefix)
	if dir == "" {
		return errors.New("blob: delete: empty prefix")
	}

	keys, err := store.list(ctx, dir, false)
	if err != nil {
		return err
	}

	return store.deleteKeys(ctx, keys)
}

func (store *S3) Ping(ctx context.Context) error {
	_, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(store.bucket)})
	if err != nil {
		return wrapError("head bucket", err)
	}
	return nil
}

// list returns the keys below dir. With directOnly the "/" delimiter keeps
// nested folders out of the result.
func (store *S3) list(ctx context.Context, dir string, directOnly bool) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(store.bucket),
		Prefix: aws.String(dir),
	}
	if directOnly {
		input.Delimiter = aws.String("/")
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(store.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapError("list "+dir, err)
		}
		for _, object := range page.Contents {
			keys = append(keys, aws.ToString(object.Key))
		}
	}

	return keys, nil
}

func (store *S3) deleteKeys(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))

		identifiers := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
		}

		output, err := store.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(store.bucket),
			Delete: &types.Delete{Objects: identifiers, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return wrapError("delete objects", err)
		}
		if len(output.Errors) > 0 {
			first := output.Errors[0]
			return fmt.Errorf("blob: s3: delete %s: %s: %s",
				aws.ToString(first.Key), aws.ToString(first.Code), aws.ToString(first.Message))
		}
	}
	return nil
}

// wrapError keeps the S3 error code in the message.
func wrapError(action string, err error) error {
	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		return fmt.Errorf("blob: s3: %s: %s: %w", action, apiError.ErrorCode(), err)
	}
	return fmt.Errorf("blob: s3: %s: %w", action, err)
}
