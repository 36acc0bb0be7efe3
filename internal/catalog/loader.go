package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hazadus/go-beattrees/internal/dataset"
)

// Loader читает датасет из источника и публикует каталог в Store
type Loader struct {
	source dataset.Source
	store  *Store
	logger *zap.Logger
}

// NewLoader создает загрузчик каталога
func NewLoader(source dataset.Source, store *Store, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source: source,
		store:  store,
		logger: logger,
	}
}

// Load загружает и публикует каталог. Ошибки не возвращаются:
// отсутствующий датасет публикуется как пустой каталог, прочие сбои
// оставляют прежний каталог. Результат отбрасывается, если ctx завершен.
// Возвращает true, если каталог был опубликован.
func (l *Loader) Load(ctx context.Context) bool {
	location := l.source.Location()

	stream, err := l.source.Open(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			l.logger.Warn("Датасет не найден, публикуется пустой каталог",
				zap.String("source", location), zap.Error(err))
			return l.publish(ctx, NewCatalog(nil, location))
		}
		l.logger.Error("Ошибка открытия датасета", zap.String("source", location), zap.Error(err))
		return false
	}
	defer stream.Close()

	songs, err := ParseReader(stream)
	if err != nil {
		l.logger.Error("Ошибка чтения датасета", zap.String("source", location), zap.Error(err))
		return false
	}

	if !l.publish(ctx, NewCatalog(songs, location)) {
		return false
	}
	l.logger.Info("Каталог загружен",
		zap.String("source", location), zap.Int("songs", len(songs)))
	return true
}

func (l *Loader) publish(ctx context.Context, c *Catalog) bool {
	if ctx.Err() != nil {
		l.logger.Debug("Загрузка больше не нужна, каталог отброшен", zap.String("source", c.Source))
		return false
	}
	l.store.Publish(c)
	return true
}
