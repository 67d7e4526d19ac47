// Package cache はアウトバウンドフェッチ結果のインプロセスTTLキャッシュを提供する。
//
// すべてのエンティティはリクエストごとに外部ソースから再構築されるため、
// 永続化は行わない。同一ウィンドウ内（デフォルト1時間）の再レンダリングは
// キャッシュ済みレスポンスを再利用し、外部APIのレート制限消費を抑える。
// 失敗したフェッチはキャッシュしない。
package cache

import (
	"sync"
	"time"
)

// entry は値と有効期限の組。
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache はキーごとにTTL付きで値を保持するスレッドセーフなキャッシュ。
type Cache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[V]

	// now はテストで時刻を差し替えるためのフック。
	now func() time.Time
}

// New は指定TTLのCacheを生成する。ttlが0以下の場合は1時間を使用する。
func New[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get はキーに対応する未失効の値を返す。
// 失効済みエントリは読み取り時に削除する。
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// 再確認してから削除（RLock解放後に書き換わっている可能性がある）
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		var zero V
		return zero, false
	}

	return e.value, true
}

// Set はキーに値を格納し、TTL経過後に失効させる。
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len は失効判定をせずに現在のエントリ数を返す。
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
