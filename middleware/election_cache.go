// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"github.com/keelchain/keel/cache"
	"github.com/keelchain/keel/keel"
)

const electionCacheLimit = 16

type electionKey struct {
	ts            uint64
	maxValidators uint64
}

// ElectionCache memoizes historical elections for consumers that re-query
// the same (ts, maxValidators) repeatedly. Elections at a past ts over
// final state are stable apart from the documented boundary-tie
// nondeterminism, so a cached answer is always one of the permitted
// answers.
type ElectionCache struct {
	engine *Middleware
	cache  *cache.LRU
}

// NewElectionCache wraps the engine's election query with a small memo.
func NewElectionCache(engine *Middleware) *ElectionCache {
	c, _ := cache.NewLRU(electionCacheLimit)
	return &ElectionCache{
		engine: engine,
		cache:  c,
	}
}

// MakeElectionAt returns the memoized election for (ts, maxValidators),
// computing it on the first query. Failed elections are not cached.
func (e *ElectionCache) MakeElectionAt(env Env, ts uint64, maxValidators uint64) ([]keel.Address, error) {
	elected, err := e.cache.GetOrLoad(electionKey{ts, maxValidators}, func(interface{}) (interface{}, error) {
		return e.engine.MakeElectionAt(env, ts, maxValidators)
	})
	if err != nil {
		return nil, err
	}
	return elected.([]keel.Address), nil
}
