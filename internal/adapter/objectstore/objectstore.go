package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxFileSize caps a single uploaded image at 5MB.
const MaxFileSize = 5 << 20

const keyPrefix = "products/"

var ErrFileTooLarge = errors.New("file exceeds 5MB limit")

// contentTypes holds the allowed image extensions and their content types.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

// ContentType reports the content type for an allowed image extension.
func ContentType(ext string) (string, bool) {
	ct, ok := contentTypes[ext]
	return ct, ok
}

var _ port.FileStorage = (*S3Storage)(nil)

// S3Storage stores product images in an S3-compatible bucket under
// products/<random>.<ext> keys.
type S3Storage struct {
	cl      *minio.Client
	bucket  string
	baseURL string
}

func NewS3Storage(
	ctx context.Context,
	endpoint, accessKey, secretKey, bucket, baseURL string,
	useSSL bool,
) (S3Storage, error) {
	const op = "S3Storage"
	log := slog.With("op", op)

	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return S3Storage{}, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := cl.BucketExists(ctx, bucket)
	if err != nil {
		return S3Storage{}, fmt.Errorf(
			"%s: object storage is unavailable: %w", op, err,
		)
	}
	if !exists {
		err = cl.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			return S3Storage{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Info("object storage is available", "bucket", bucket)
	return S3Storage{cl, bucket, baseURL}, nil
}

func (s S3Storage) StoreFile(
	ctx context.Context, ext, contentType string, size int64, r io.Reader,
) (string, error) {
	const op = "S3Storage.StoreFile"

	if size > MaxFileSize {
		return "", fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}

	key := keyPrefix + uuid.NewString() + ext

	_, err := s.cl.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.baseURL + "/" + key, nil
}
