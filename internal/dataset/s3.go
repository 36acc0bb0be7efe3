package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazadus/go-beattrees/internal/s3"
)

// S3Source читает датасет из бакета S3
type S3Source struct {
	location string
	bucket   string
	key      string
	config   s3.Config
}

// NewS3Source создает источник для адреса s3://bucket/key
func NewS3Source(location string, config s3.Config) (*S3Source, error) {
	bucket, key, err := s3.ParseURL(location)
	if err != nil {
		return nil, err
	}
	return &S3Source{
		location: location,
		bucket:   bucket,
		key:      key,
		config:   config,
	}, nil
}

// Open открывает объект датасета
func (s *S3Source) Open(ctx context.Context) (*Stream, error) {
	downloader, err := s3.NewDownloader(&s.config)
	if err != nil {
		return nil, err
	}

	obj, err := downloader.Open(ctx, s.bucket, s.key)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.location)
		}
		return nil, err
	}
	return &Stream{ReadCloser: obj.Body, Size: obj.Size}, nil
}

// Location возвращает адрес объекта
func (s *S3Source) Location() string {
	return s.location
}
