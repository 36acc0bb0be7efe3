package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSSource читает датасет из Google Cloud Storage
type GCSSource struct {
	location        string
	bucket          string
	object          string
	credentialsFile string
}

// NewGCSSource создает источник для адреса gs://bucket/object
func NewGCSSource(location, credentialsFile string) (*GCSSource, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("неверный URL: %w", err)
	}
	object := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "gs" || u.Host == "" || object == "" {
		return nil, fmt.Errorf("неверный формат URL GCS: %s", location)
	}

	return &GCSSource{
		location:        location,
		bucket:          u.Host,
		object:          object,
		credentialsFile: credentialsFile,
	}, nil
}

// gcsReader закрывает вместе с потоком и клиента
type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open открывает объект датасета
func (s *GCSSource) Open(ctx context.Context) (*Stream, error) {
	var opts []option.ClientOption
	if s.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}

	// Без файла учетных данных используются application default credentials
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента GCS: %w", err)
	}

	reader, err := client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		client.Close()
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.location)
		}
		return nil, fmt.Errorf("ошибка чтения объекта GCS: %w", err)
	}

	return &Stream{
		ReadCloser: &gcsReader{Reader: reader, client: client},
		Size:       reader.Attrs.Size,
	}, nil
}

// Location возвращает адрес объекта
func (s *GCSSource) Location() string {
	return s.location
}
