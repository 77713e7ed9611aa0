package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache 带过期时间的进程内 LRU 缓存
type TTLCache[K comparable, V any] struct {
	lru *lru.Cache[K, item[V]]
	ttl time.Duration
	now func() time.Time
}

func NewTTLCache[K comparable, V any](size int, ttl time.Duration) (*TTLCache[K, V], error) {
	l, err := lru.New[K, item[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[K, V]{lru: l, ttl: ttl, now: time.Now}, nil
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.lru.Add(key, item[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

// Get 不存在或已过期时 ok 为 false
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	it, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(it.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return it.value, true
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}
