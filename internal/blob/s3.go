package blob

import (
	a "bitwise74/files-api/aws"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"
)

const minMultipartSize = 12 << 20

// S3Store keeps blobs as objects in a bucket. Object puts are atomic so
// readers never see partial content
type S3Store struct {
	S3     *a.S3Client
	Prefix string
}

func NewS3Store(c *a.S3Client, prefix string) *S3Store {
	return &S3Store{S3: c, Prefix: prefix}
}

func (s *S3Store) Path(name string) string {
	return s.Prefix + name
}

func (s *S3Store) Write(ctx context.Context, path string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:        s.S3.Bucket,
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimetype.Detect(data).String()),
	}

	var err error
	if len(data) > minMultipartSize {
		uploader := manager.NewUploader(s.S3.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err = uploader.Upload(ctx, input)
	} else {
		_, err = s.S3.C.PutObject(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("failed to upload blob to S3, %w", err)
	}

	return nil
}

func (s *S3Store) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := s.S3.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.S3.Bucket,
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotExist
		}

		return nil, fmt.Errorf("failed to fetch blob from S3, %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob body, %w", err)
	}

	return data, nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	_, err := s.S3.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.S3.Bucket,
		Key:    aws.String(path),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete blob from S3, %w", err)
	}

	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
