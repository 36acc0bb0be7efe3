package catalog

import "sync/atomic"

// Store хранит текущий опубликованный каталог.
// Писатель один (загрузчик), читатели работают без блокировок.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore создает хранилище с пустым каталогом
func NewStore() *Store {
	s := &Store{}
	s.current.Store(NewCatalog(nil, ""))
	return s
}

// Current возвращает последний опубликованный каталог, никогда не nil
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Publish атомарно заменяет каталог целиком
func (s *Store) Publish(c *Catalog) {
	if c == nil {
		c = NewCatalog(nil, "")
	}
	s.current.Store(c)
}
