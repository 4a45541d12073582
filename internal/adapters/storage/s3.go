package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API is the subset of the S3 client used by S3ObjectStorage
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ObjectStorage implements ObjectStorage on AWS S3 or any S3-compatible endpoint
type S3ObjectStorage struct {
	client   S3API
	region   string
	endpoint string
}

// NewS3ObjectStorage builds an S3 client from the configuration.
// Without static keys the default AWS credential chain is used, which is what
// the Lambda execution role provides.
func NewS3ObjectStorage(ctx context.Context, cfg *StorageConfig) (*S3ObjectStorage, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(creds))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3ObjectStorageWithClient(client, region, cfg.Endpoint), nil
}

// NewS3ObjectStorageWithClient wraps an existing client
func NewS3ObjectStorageWithClient(client S3API, region, endpoint string) *S3ObjectStorage {
	return &S3ObjectStorage{
		client:   client,
		region:   region,
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

// PutObject implements ObjectStorage.PutObject
func (s *S3ObjectStorage) PutObject(ctx context.Context, bucket, key string, data []byte, opts *PutOptions) (*PutObjectResult, error) {
	if err := validateLocation("PutObject", bucket, key); err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentTypeOrDefault(opts)),
	}
	if opts != nil && len(opts.Metadata) > 0 {
		input.Metadata = opts.Metadata
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return nil, NewStorageError("PutObject", bucket, key, translateS3Error(err))
	}

	result := &PutObjectResult{
		Bucket:               bucket,
		Key:                  key,
		ETag:                 aws.ToString(out.ETag),
		VersionID:            aws.ToString(out.VersionId),
		ServerSideEncryption: string(out.ServerSideEncryption),
		Size:                 int64(len(data)),
		Location:             s.location(bucket, key),
		ResponseMetadata: ResponseMetadata{
			HTTPStatusCode: http.StatusOK,
		},
	}
	if requestID, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		result.ResponseMetadata.RequestID = requestID
	}

	return result, nil
}

// GetObject implements ObjectStorage.GetObject
func (s *S3ObjectStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateLocation("GetObject", bucket, key); err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, NewStorageError("GetObject", bucket, key, translateS3Error(err))
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, NewStorageError("GetObject", bucket, key, fmt.Errorf("failed to read object body: %w", err))
	}

	return body, nil
}

// HeadObject implements ObjectStorage.HeadObject
func (s *S3ObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	if err := validateLocation("HeadObject", bucket, key); err != nil {
		return nil, err
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, NewStorageError("HeadObject", bucket, key, translateS3Error(err))
	}

	return &ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
		ETag:         aws.ToString(out.ETag),
		Metadata:     out.Metadata,
	}, nil
}

// DeleteObject implements ObjectStorage.DeleteObject
func (s *S3ObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := validateLocation("DeleteObject", bucket, key); err != nil {
		return err
	}

	// S3 deletes of missing keys succeed; report them like the other backends do
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return NewStorageError("DeleteObject", bucket, key, translateS3Error(err))
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewStorageError("DeleteObject", bucket, key, translateS3Error(err))
	}
	return nil
}

// Close implements ObjectStorage.Close
func (s *S3ObjectStorage) Close() error {
	return nil
}

func (s *S3ObjectStorage) location(bucket, key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, key)
}

// translateS3Error keeps the provider's message and adds a sentinel for the
// codes callers care about.
func translateS3Error(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	case "NoSuchBucket":
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	case "AccessDenied", "Forbidden":
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case "ServiceUnavailable", "SlowDown":
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}
