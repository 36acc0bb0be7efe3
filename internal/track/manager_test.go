package track

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hazadus/go-beattrees/internal/dataset"
)

const header = ",track_id,artists,album_name,track_name,popularity,duration_ms,explicit,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature,track_genre"

// writeDataset создает файл датасета во временной директории
func writeDataset(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	raw := header + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("Ошибка записи датасета: %v", err)
	}
	return path
}

func row(i int, trackName, artists string, popularity int, tempo float64) string {
	return fmt.Sprintf("%d,id%d,%s,Album,%s,%d,200000,0,0.5,0.5,1,-6.0,1,0.05,0.1,0.0,0.1,0.5,%g,4,pop",
		i, i, artists, trackName, popularity, tempo)
}

// manualScheduler запускает отложенные функции по команде
type manualScheduler struct {
	mu    sync.Mutex
	funcs []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs = append(s.funcs, f)
}

func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	f := s.funcs[i]
	s.mu.Unlock()
	f()
}

// blockingSource отдает датасет только после закрытия release
type blockingSource struct {
	release chan struct{}
	body    string
}

func (s *blockingSource) Open(context.Context) (*dataset.Stream, error) {
	<-s.release
	return &dataset.Stream{ReadCloser: io.NopCloser(strings.NewReader(s.body)), Size: -1}, nil
}

func (s *blockingSource) Location() string { return "blocking" }

// waitDone ждет завершения загрузки
func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Загрузка каталога не завершилась")
	}
}

func newLoadedManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	path := writeDataset(t,
		row(0, "Comedy", "Gen Hoshino", 73, 87.917),
		row(1, "Hold On", "Chord Overstreet", 82, 120),
		row(2, "Crazy", "Courtney Love", 60, 120),
		row(3, "Lovely", "Billie Eilish", 90, 115.284),
		row(4, "Almost", "Glove Club", 40, 120.5),
	)
	m := NewManager(dataset.NewFileSource(path), nil, opts...)
	t.Cleanup(m.Close)
	waitDone(t, m.LoadCatalog(context.Background()))
	return m
}

func TestLoadCatalog(t *testing.T) {
	path := writeDataset(t,
		row(0, "Comedy", "Gen Hoshino", 73, 87.917),
		row(1, "Hold On", "Chord Overstreet", 82, 120),
		"2,id2,Short,Row,Only,10",
	)
	m := NewManager(dataset.NewFileSource(path), nil)
	defer m.Close()

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	// До загрузки каталог пуст
	if len(m.CurrentCatalog()) != 0 {
		t.Errorf("Ожидался пустой каталог до загрузки, получено %d", len(m.CurrentCatalog()))
	}

	waitDone(t, m.LoadCatalog(context.Background()))

	songs := m.CurrentCatalog()
	if len(songs) != 2 {
		t.Fatalf("Ожидалось 2 песни, получено %d", len(songs))
	}
	if songs[0].TrackName != "Hold On" {
		t.Errorf("Ожидалась самая популярная песня первой, получено: %s", songs[0].TrackName)
	}

	select {
	case ev := <-events:
		if ev.Kind != CatalogLoaded {
			t.Errorf("Ожидалось событие %s, получено %s", CatalogLoaded, ev.Kind)
		}
	default:
		t.Error("Ожидалось событие загрузки каталога")
	}
}

func TestLoadCatalogMissingDataset(t *testing.T) {
	m := NewManager(dataset.NewFileSource(filepath.Join(t.TempDir(), "missing.csv")), nil)
	defer m.Close()

	waitDone(t, m.LoadCatalog(context.Background()))

	if len(m.CurrentCatalog()) != 0 {
		t.Errorf("Ожидался пустой каталог, получено %d", len(m.CurrentCatalog()))
	}
	if m.Search("anything") == nil {
		t.Error("Поиск по пустому каталогу должен возвращать пустой срез")
	}
}

func TestLoadCatalogDiscardedAfterClose(t *testing.T) {
	src := &blockingSource{
		release: make(chan struct{}),
		body:    header + "\n" + row(0, "Song", "Artist", 10, 100) + "\n",
	}
	m := NewManager(src, nil)

	done := m.LoadCatalog(context.Background())
	m.Close()
	close(src.release)
	waitDone(t, done)

	if len(m.CurrentCatalog()) != 0 {
		t.Errorf("Каталог не должен публиковаться после Close, получено %d песен", len(m.CurrentCatalog()))
	}
}

func TestSearchAndRelated(t *testing.T) {
	m := newLoadedManager(t)

	bpm := m.Search("120 bpm")
	if len(bpm) != 2 {
		t.Fatalf("Ожидалось 2 песни с темпом 120, получено %d", len(bpm))
	}

	love := m.Search("LOVE")
	if len(love) != 3 {
		t.Errorf("Ожидалось 3 песни по запросу LOVE, получено %d", len(love))
	}

	if got := m.Search(""); len(got) != len(m.CurrentCatalog()) {
		t.Errorf("Пустой запрос должен возвращать весь каталог")
	}

	related := m.Related(bpm[0])
	if len(related) != 2 {
		t.Fatalf("Ожидалось 2 похожие песни, получено %d", len(related))
	}
	for _, s := range related {
		if s.ID == bpm[0].ID {
			t.Error("Похожие песни не должны содержать саму песню")
		}
	}
}

func TestSongByTrackID(t *testing.T) {
	m := newLoadedManager(t)

	song, err := m.SongByTrackID("id3")
	if err != nil {
		t.Fatalf("Ошибка поиска песни: %v", err)
	}
	if song.TrackName != "Lovely" {
		t.Errorf("Ожидалась песня Lovely, получено: %s", song.TrackName)
	}

	if _, err := m.SongByTrackID("missing"); err == nil {
		t.Error("Ожидалась ошибка при поиске несуществующей песни")
	}
}

func TestAddEntryNotification(t *testing.T) {
	sched := &manualScheduler{}
	m := newLoadedManager(t, WithScheduler(sched))
	songs := m.CurrentCatalog()

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.AddEntry(songs[0])
	m.AddEntry(songs[1])

	title, ok := m.CurrentNotification()
	if !ok || title != songs[1].TrackName {
		t.Errorf("Ожидалось уведомление %q, получено %q (%v)", songs[1].TrackName, title, ok)
	}

	// Таймер первой песни не должен сбросить уведомление второй
	sched.fire(0)
	if title, ok := m.CurrentNotification(); !ok || title != songs[1].TrackName {
		t.Errorf("Уведомление сброшено устаревшим таймером: %q (%v)", title, ok)
	}

	sched.fire(1)
	if _, ok := m.CurrentNotification(); ok {
		t.Error("Уведомление должно исчезнуть после задержки")
	}

	var kinds []EventKind
	for len(events) > 0 {
		kinds = append(kinds, (<-events).Kind)
	}
	expected := []EventKind{LogChanged, NotificationChanged, LogChanged, NotificationChanged, NotificationChanged}
	if fmt.Sprint(kinds) != fmt.Sprint(expected) {
		t.Errorf("Ожидались события %v, получено %v", expected, kinds)
	}
}

func TestRemoveDuplicateEntry(t *testing.T) {
	m := newLoadedManager(t, WithScheduler(&manualScheduler{}))
	songs := m.CurrentCatalog()

	m.AddEntry(songs[0])
	m.AddEntry(songs[1])
	m.AddEntry(songs[0])

	m.RemoveEntry(songs[0])

	log := m.CurrentLog()
	if len(log) != 2 {
		t.Fatalf("Ожидалось 2 записи, получено %d", len(log))
	}
	if log[0].ID != songs[1].ID || log[1].ID != songs[0].ID {
		t.Errorf("Нарушен порядок записей: %v", log)
	}

	// Удаление отсутствующей песни ничего не меняет
	m.RemoveEntry(songs[4])
	if len(m.CurrentLog()) != 2 {
		t.Errorf("Ожидалось 2 записи после удаления отсутствующей песни, получено %d", len(m.CurrentLog()))
	}
}

func TestLogSurvivesReload(t *testing.T) {
	m := newLoadedManager(t, WithScheduler(&manualScheduler{}))
	song := m.CurrentCatalog()[0]
	m.AddEntry(song)

	waitDone(t, m.LoadCatalog(context.Background()))

	log := m.CurrentLog()
	if len(log) != 1 || log[0].ID != song.ID {
		t.Errorf("Запись журнала должна сохранить идентичность после перезагрузки: %v", log)
	}

	// После перезагрузки у песен новые ID, старая запись удаляется по своему ID
	m.RemoveEntry(song)
	if len(m.CurrentLog()) != 0 {
		t.Error("Запись не удалена по исходному ID")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	m := NewManager(dataset.NewFileSource("unused.csv"), nil)
	defer m.Close()

	events, unsubscribe := m.Subscribe()
	unsubscribe()
	unsubscribe()

	if _, ok := <-events; ok {
		t.Error("Канал должен быть закрыт после отписки")
	}
}

func TestSubscribeAfterClose(t *testing.T) {
	m := NewManager(dataset.NewFileSource("unused.csv"), nil)
	m.Close()
	m.Close()

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()
	if _, ok := <-events; ok {
		t.Error("Канал должен быть закрыт после Close")
	}
}
