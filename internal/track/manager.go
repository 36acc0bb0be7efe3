// Package track содержит сервис, через который интерфейс работает с каталогом
// и журналом сессии
package track

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hazadus/go-beattrees/internal/catalog"
	"github.com/hazadus/go-beattrees/internal/dataset"
	"github.com/hazadus/go-beattrees/internal/query"
	"github.com/hazadus/go-beattrees/internal/sessionlog"
	"github.com/hazadus/go-beattrees/internal/similar"
)

// EventKind тип события сервиса
type EventKind int

const (
	// CatalogLoaded опубликован новый каталог
	CatalogLoaded EventKind = iota
	// LogChanged изменился журнал сессии
	LogChanged
	// NotificationChanged появилось или исчезло уведомление
	NotificationChanged
)

func (k EventKind) String() string {
	switch k {
	case CatalogLoaded:
		return "catalog-loaded"
	case LogChanged:
		return "log-changed"
	case NotificationChanged:
		return "notification-changed"
	default:
		return "unknown"
	}
}

// Event событие об изменении состояния. Подробности читаются снимками.
type Event struct {
	Kind EventKind
}

// subscriberBuffer размер буфера канала подписчика
const subscriberBuffer = 16

// Option настраивает Manager
type Option func(*options)

type options struct {
	delay     time.Duration
	scheduler sessionlog.Scheduler
}

// WithNotificationDelay задает время жизни уведомления
func WithNotificationDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithScheduler задает планировщик сброса уведомлений
func WithScheduler(s sessionlog.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// Manager управляет каталогом и журналом сессии
type Manager struct {
	store  *catalog.Store
	loader *catalog.Loader
	log    *sessionlog.Log
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
	closed      bool
}

// NewManager создает новый экземпляр Manager
func NewManager(source dataset.Source, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	o := options{delay: sessionlog.DefaultDelay}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	store := catalog.NewStore()
	m := &Manager{
		store:       store,
		loader:      catalog.NewLoader(source, store, logger),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[int]chan Event),
	}

	logOpts := []sessionlog.Option{sessionlog.WithOnChange(m.onLogChange)}
	if o.scheduler != nil {
		logOpts = append(logOpts, sessionlog.WithScheduler(o.scheduler))
	}
	m.log = sessionlog.New(o.delay, logOpts...)

	return m
}

// LoadCatalog запускает загрузку каталога в отдельной горутине.
// Возвращаемый канал закрывается, когда загрузка завершена.
func (m *Manager) LoadCatalog(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	// Close отменяет загрузку синхронно, отмена ctx вызывающего доходит асинхронно
	loadCtx, cancel := context.WithCancel(m.ctx)
	stop := context.AfterFunc(ctx, cancel)

	go func() {
		defer close(done)
		defer cancel()
		defer stop()

		if m.loader.Load(loadCtx) {
			m.emit(CatalogLoaded)
		}
	}()

	return done
}

// Catalog возвращает текущий снимок каталога
func (m *Manager) Catalog() *catalog.Catalog {
	return m.store.Current()
}

// CurrentCatalog возвращает песни текущего каталога
func (m *Manager) CurrentCatalog() []catalog.Song {
	return m.store.Current().Songs()
}

// Search ищет песни в текущем каталоге
func (m *Manager) Search(q string) []catalog.Song {
	return query.Search(q, m.CurrentCatalog())
}

// Related возвращает песни с тем же целым темпом
func (m *Manager) Related(song catalog.Song) []catalog.Song {
	return similar.Related(song, m.CurrentCatalog())
}

// SongByTrackID ищет песню по trackID датасета
func (m *Manager) SongByTrackID(trackID string) (catalog.Song, error) {
	return m.store.Current().SongByTrackID(trackID)
}

// AddEntry добавляет песню в журнал сессии
func (m *Manager) AddEntry(song catalog.Song) {
	m.log.AddEntry(song)
}

// RemoveEntry удаляет первую запись песни из журнала
func (m *Manager) RemoveEntry(song catalog.Song) {
	m.log.RemoveEntry(song)
}

// CurrentNotification возвращает заголовок текущего уведомления
func (m *Manager) CurrentNotification() (string, bool) {
	n, ok := m.log.CurrentNotification()
	return n.Title, ok
}

// CurrentLog возвращает записи журнала
func (m *Manager) CurrentLog() []catalog.Song {
	return m.log.Entries()
}

// Subscribe подписывает на события. Доставка неблокирующая: при переполненном
// буфере событие пропускается, актуальное состояние всегда доступно снимком.
// Возвращаемая функция отменяет подписку.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextID
	m.nextID++
	m.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subscribers[id]; ok {
				delete(m.subscribers, id)
				close(sub)
			}
		})
	}
}

// Close останавливает сервис: незавершенная загрузка будет отброшена,
// каналы подписчиков закрываются
func (m *Manager) Close() {
	m.cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, ch := range m.subscribers {
		delete(m.subscribers, id)
		close(ch)
	}
}

func (m *Manager) onLogChange(kind sessionlog.ChangeKind) {
	switch kind {
	case sessionlog.EntriesChanged:
		m.emit(LogChanged)
	case sessionlog.NotificationChanged:
		m.emit(NotificationChanged)
	}
}

func (m *Manager) emit(kind EventKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	for _, ch := range m.subscribers {
		select {
		case ch <- Event{Kind: kind}:
		default:
			m.logger.Debug("Подписчик не успевает, событие пропущено", zap.Stringer("event", kind))
		}
	}
}
