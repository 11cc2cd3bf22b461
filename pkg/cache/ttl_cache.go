// Package cache — generic in-memory TTL cache.
//
// Her entry bir son kullanma zamanı taşır; süresi geçen entry okunamaz
// (cache miss) ve periyodik cleanup goroutine'i tarafından map'ten
// silinir. sync.RWMutex ile thread-safe — birden fazla goroutine aynı
// anda okuyabilir.
//
// Kullanım alanı: nadiren değişen ama sık okunan veriler — ör. dashboard
// istatistikleri her request'te 5 ayrı COUNT sorgusu yerine 30 saniyede
// bir hesaplanır.
package cache

import (
	"sync"
	"time"
)

// entry, cache'teki tek bir kayıt.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, generic in-memory TTL cache.
//
//	c := cache.New[string, Stats](30*time.Second, 5*time.Minute)
//	c.Set("dashboard", stats)
//	v, ok := c.Get("dashboard")
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// New, cache oluşturur ve periyodik temizleme goroutine'ini başlatır.
//
// ttl: entry yaşam süresi. cleanupInterval: süresi dolan entry'lerin
// map'ten fiziksel silinme sıklığı — Get zaten stale entry döndürmez,
// cleanup sadece belleği geri kazanır.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get, cache'ten okur. Key yoksa veya süresi dolmuşsa (zero, false).
// Süresi dolan entry burada silinmez — Get'i RLock ile hızlı tutmak için.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, cache'e TTL ile yazar.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete, tek bir key'i siler — veri değiştiğinde invalidation için.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear, tüm cache'i boşaltır.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
}

// Close, temizleme goroutine'ini durdurur (goroutine leak önleme).
// Birden fazla çağrı güvenlidir — shutdown path'inde hem defer hem
// explicit çağrı olabilir.
func (c *TTLCache[K, V]) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
}

func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
