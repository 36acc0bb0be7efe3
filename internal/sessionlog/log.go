// Package sessionlog содержит журнал выбранных за сессию песен
// и временное уведомление о добавлении
package sessionlog

import (
	"sync"
	"time"

	"github.com/hazadus/go-beattrees/internal/catalog"
)

// DefaultDelay время жизни уведомления по умолчанию
const DefaultDelay = 1500 * time.Millisecond

// Notification уведомление о последней добавленной песне
type Notification struct {
	Title      string
	Generation uint64
}

// ChangeKind тип изменения журнала
type ChangeKind int

const (
	// EntriesChanged изменился список записей
	EntriesChanged ChangeKind = iota
	// NotificationChanged появилось или исчезло уведомление
	NotificationChanged
)

// Scheduler откладывает выполнение функции
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// timeScheduler планировщик на основе time.AfterFunc
type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Option настраивает журнал
type Option func(*Log)

// WithScheduler задает планировщик сброса уведомлений
func WithScheduler(s Scheduler) Option {
	return func(l *Log) {
		l.scheduler = s
	}
}

// WithOnChange задает обработчик изменений журнала.
// Вызывается вне блокировки журнала.
func WithOnChange(fn func(ChangeKind)) Option {
	return func(l *Log) {
		l.onChange = fn
	}
}

// Log журнал сессии. Записи меняются только через AddEntry и RemoveEntry.
// Мьютекс защищает состояние от срабатывания таймеров сброса уведомления.
type Log struct {
	mu         sync.Mutex
	entries    []catalog.Song
	pending    *Notification
	generation uint64

	delay     time.Duration
	scheduler Scheduler
	onChange  func(ChangeKind)
}

// New создает пустой журнал. Неположительная задержка заменяется DefaultDelay.
func New(delay time.Duration, opts ...Option) *Log {
	if delay <= 0 {
		delay = DefaultDelay
	}
	l := &Log{
		entries:   make([]catalog.Song, 0),
		delay:     delay,
		scheduler: timeScheduler{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddEntry добавляет песню в конец журнала (повторы разрешены)
// и заменяет текущее уведомление новым
func (l *Log) AddEntry(song catalog.Song) {
	l.mu.Lock()
	l.entries = append(l.entries, song)
	l.generation++
	gen := l.generation
	l.pending = &Notification{Title: song.TrackName, Generation: gen}
	l.mu.Unlock()

	l.notify(EntriesChanged)
	l.notify(NotificationChanged)

	l.scheduler.AfterFunc(l.delay, func() {
		l.expire(gen)
	})
}

// expire сбрасывает уведомление, только если после него не было новых добавлений
func (l *Log) expire(gen uint64) {
	l.mu.Lock()
	cleared := l.pending != nil && l.pending.Generation == gen
	if cleared {
		l.pending = nil
	}
	l.mu.Unlock()

	if cleared {
		l.notify(NotificationChanged)
	}
}

// RemoveEntry удаляет первую запись с тем же ID. Если записи нет, ничего не делает.
// Уведомление не затрагивается.
func (l *Log) RemoveEntry(song catalog.Song) {
	l.mu.Lock()
	removed := false
	for i, e := range l.entries {
		if e.ID == song.ID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			removed = true
			break
		}
	}
	l.mu.Unlock()

	if removed {
		l.notify(EntriesChanged)
	}
}

// CurrentNotification возвращает копию текущего уведомления
func (l *Log) CurrentNotification() (Notification, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending == nil {
		return Notification{}, false
	}
	return *l.pending, true
}

// Entries возвращает копию записей журнала в порядке добавления
func (l *Log) Entries() []catalog.Song {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]catalog.Song, len(l.entries))
	copy(result, l.entries)
	return result
}

// Len возвращает количество записей
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) notify(kind ChangeKind) {
	if l.onChange != nil {
		l.onChange(kind)
	}
}
