package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hazadus/go-beattrees/internal/streaming"
)

// httpBufferSize размер буфера потокового чтения
const httpBufferSize = 256 * 1024

// HTTPSource читает датасет по HTTP(S)
type HTTPSource struct {
	url string
}

// NewHTTPSource создает источник для URL
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{url: url}
}

// Open начинает потоковое чтение датасета
func (s *HTTPSource) Open(ctx context.Context) (*Stream, error) {
	reader, err := streaming.NewReader(ctx, s.url, httpBufferSize)
	if err != nil {
		var statusErr *streaming.StatusError
		if errors.As(err, &statusErr) && (statusErr.Code == http.StatusNotFound || statusErr.Code == http.StatusGone) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.url)
		}
		return nil, fmt.Errorf("ошибка загрузки датасета: %w", err)
	}
	return &Stream{ReadCloser: reader, Size: reader.Size()}, nil
}

// Location возвращает URL
func (s *HTTPSource) Location() string {
	return s.url
}
