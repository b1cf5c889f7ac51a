package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// S3Storage stores uploads in an S3 bucket. Credentials come from the
// default AWS provider chain.
type S3Storage struct {
	bucket   string
	client   s3iface.S3API
	uploader s3manageriface.UploaderAPI
}

func NewS3Storage(bucket, region string) (*S3Storage, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is required for the s3 storage driver")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewS3StorageWithClient(bucket, s3.New(sess), s3manager.NewUploader(sess)), nil
}

func NewS3StorageWithClient(bucket string, client s3iface.S3API, uploader s3manageriface.UploaderAPI) *S3Storage {
	return &S3Storage{bucket: bucket, client: client, uploader: uploader}
}

func (s *S3Storage) Save(ctx context.Context, upload Upload) (*Object, error) {
	if upload.Body == nil {
		return nil, errors.New("upload has no body")
	}

	key := objectKey(upload.Filename)
	contentType := upload.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(upload.Filename))
	}

	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   upload.Body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	result, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return &Object{Key: key, URL: result.Location}, nil
}

// Delete is idempotent: S3 reports success for keys that do not exist.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}
