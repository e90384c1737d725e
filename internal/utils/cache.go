package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// PanelCache 首页榜单等小块数据的过期缓存
// ttl 为 0 时不缓存
type PanelCache struct {
	store *cache.Cache
	ttl   time.Duration
}

// NewPanelCache 创建缓存
// 不启动 go-cache 自带的清理协程，过期条目由 DeleteExpired 统一清理
func NewPanelCache(ttl time.Duration) *PanelCache {
	return &PanelCache{
		store: cache.New(ttl, 0),
		ttl:   ttl,
	}
}

// Get 获取缓存值
func (c *PanelCache) Get(key string) (interface{}, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	return c.store.Get(key)
}

// Set 设置缓存值
func (c *PanelCache) Set(key string, value interface{}) {
	if c.ttl <= 0 {
		return
	}
	c.store.Set(key, value, c.ttl)
}

// DeleteExpired 删除已过期条目
func (c *PanelCache) DeleteExpired() {
	c.store.DeleteExpired()
}

// lruItem 包装实际的数据，增加过期时间
type lruItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// LRUCache 带过期时间的 LRU 缓存，线程安全
type LRUCache[T any] struct {
	storage *lru.Cache[string, lruItem[T]]
	ttl     time.Duration
	now     func() time.Time
}

// NewLRUCache size 是最大缓存条数，ttl 是数据有效期（每次 Get 命中会续期）
func NewLRUCache[T any](size int, ttl time.Duration) *LRUCache[T] {
	c, _ := lru.New[string, lruItem[T]](size)
	return &LRUCache[T]{
		storage: c,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set 写入或覆盖
func (c *LRUCache[T]) Set(key string, value T) {
	c.storage.Add(key, lruItem[T]{
		Value:     value,
		ExpiredAt: c.now().Add(c.ttl),
	})
}

// Get 读取（带过期检查）
func (c *LRUCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	if c.now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	item.ExpiredAt = c.now().Add(c.ttl)
	c.storage.Add(key, item)
	return item.Value, true
}

// GetOrCreate 读取，不存在时用 create 创建并写入
func (c *LRUCache[T]) GetOrCreate(key string, create func() T) T {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	// 并发首次访问时以先写入者为准
	if prev, ok, _ := c.storage.PeekOrAdd(key, lruItem[T]{Value: v, ExpiredAt: c.now().Add(c.ttl)}); ok {
		if !c.now().After(prev.ExpiredAt) {
			return prev.Value
		}
		c.Set(key, v)
	}
	return v
}

// Len 当前条数
func (c *LRUCache[T]) Len() int {
	return c.storage.Len()
}

// PurgeExpired 清理所有已过期条目，返回清理数
func (c *LRUCache[T]) PurgeExpired() int {
	now := c.now()
	n := 0
	for _, key := range c.storage.Keys() {
		item, ok := c.storage.Peek(key)
		if ok && now.After(item.ExpiredAt) {
			c.storage.Remove(key)
			n++
		}
	}
	return n
}
