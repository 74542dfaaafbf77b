// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is an LRU cache extending golang-lru with load-through access
// and hit/miss accounting.
type LRU struct {
	*lru.Cache
	stats Stats
}

// NewLRU creates an LRU cache instance.
// maxSize should be > 0, or an error is returned.
func NewLRU(maxSize int) (*LRU, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: cache}, nil
}

// Loader defines loader to load value.
type Loader func(key interface{}) (interface{}, error)

// GetOrLoad first tries to get from cache, and does load if missed.
func (l *LRU) GetOrLoad(key interface{}, loader Loader) (interface{}, error) {
	if v, ok := l.Get(key); ok {
		l.stats.Hit()
		return v, nil
	}
	l.stats.Miss()

	v, err := loader(key)
	if err != nil {
		return nil, err
	}

	l.Add(key, v)
	return v, nil
}

// Stats returns the hit/miss stats of load-through accesses.
func (l *LRU) Stats() (bool, int64, int64) {
	return l.stats.Stats()
}
