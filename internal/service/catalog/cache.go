package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
)

const listKey = "services:all"

// LRUListCache кэш списка услуг на expirable LRU.
// Хранится одна запись; TTL ограничивает устаревание при правках в обход сервиса.
type LRUListCache struct {
	cache *expirable.LRU[string, []*domain.Service]
}

// NewLRUListCache создает кэш. size <= 0 или ttl <= 0 отключают кэширование (возвращается nil).
func NewLRUListCache(size int, ttl time.Duration) *LRUListCache {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return &LRUListCache{
		cache: expirable.NewLRU[string, []*domain.Service](size, nil, ttl),
	}
}

// Get возвращает список из кэша
func (c *LRUListCache) Get() ([]*domain.Service, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(listKey)
}

// Store кладёт список в кэш
func (c *LRUListCache) Store(services []*domain.Service) {
	if c == nil {
		return
	}
	c.cache.Add(listKey, services)
}

// Invalidate сбрасывает кэш после любой записи в каталог
func (c *LRUListCache) Invalidate() {
	if c == nil {
		return
	}
	c.cache.Purge()
}
