// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package cache

import "sync/atomic"

// Stats tallies cache lookups, distinguishing hits from misses.
type Stats struct {
	hit, miss atomic.Int64
	rateMark  atomic.Int32
}

// Hit records a hit and returns the hit count.
func (s *Stats) Hit() int64 { return s.hit.Add(1) }

// Miss records a miss and returns the miss count.
func (s *Stats) Miss() int64 { return s.miss.Add(1) }

// Stats returns the hit and miss counts, and whether the hit rate moved
// (at permille resolution) since the previous call.
func (s *Stats) Stats() (bool, int64, int64) {
	hit := s.hit.Load()
	miss := s.miss.Load()
	lookups := hit + miss

	hitRate := float64(0)
	if lookups > 0 {
		hitRate = float64(hit) / float64(lookups)
	}
	mark := int32(hitRate * 1000)

	return s.rateMark.Swap(mark) != mark, hit, miss
}
