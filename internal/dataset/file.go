package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSource читает датасет с локального диска
type FileSource struct {
	path string
}

// NewFileSource создает источник для локального файла
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Open открывает файл датасета
func (s *FileSource) Open(_ context.Context) (*Stream, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("ошибка открытия файла датасета: %w", err)
	}

	size := int64(-1)
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}
	return &Stream{ReadCloser: file, Size: size}, nil
}

// Location возвращает путь к файлу
func (s *FileSource) Location() string {
	return s.path
}
