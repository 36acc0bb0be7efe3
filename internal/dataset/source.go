// Package dataset определяет источники, из которых читается датасет каталога:
// локальный файл, HTTP, S3 и Google Cloud Storage
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hazadus/go-beattrees/internal/s3"
)

// ErrNotFound возвращается, если датасет не удалось найти по указанному адресу
var ErrNotFound = errors.New("датасет не найден")

// Stream открытый поток датасета
type Stream struct {
	io.ReadCloser
	Size int64 // Размер в байтах или -1, если неизвестен
}

// Source источник датасета
type Source interface {
	// Open открывает датасет для чтения
	Open(ctx context.Context) (*Stream, error)
	// Location возвращает адрес датасета для логов
	Location() string
}

// Options содержит настройки удаленных хранилищ
type Options struct {
	S3                 s3.Config
	GCSCredentialsFile string
}

// NewSource выбирает источник по схеме адреса
func NewSource(location string, opts Options) (Source, error) {
	switch {
	case location == "":
		return nil, fmt.Errorf("адрес датасета не задан")
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location), nil
	case strings.HasPrefix(location, "s3://"):
		return NewS3Source(location, opts.S3)
	case strings.HasPrefix(location, "gs://"):
		return NewGCSSource(location, opts.GCSCredentialsFile)
	default:
		return NewFileSource(location), nil
	}
}
