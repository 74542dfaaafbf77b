// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keelchain/keel/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		invalidKey = []byte("abc")
	)

	persisted, err := New(t.TempDir(), Options{16, 16})
	assert.Nil(t, err)
	defer persisted.Close()

	mem, err := NewMem()
	assert.Nil(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persisted, mem} {
		err = db.Put(key, value)
		assert.Nil(t, err)

		ret1, err := db.Get(key)
		assert.Nil(t, err)

		ret2, err := db.Has(key)
		assert.Nil(t, err)

		ret3, err := db.Has(invalidKey)
		assert.Nil(t, err)

		err = db.Delete(key)
		assert.Nil(t, err)

		_, ret4 := db.Get(key)

		tests := []struct {
			ret      interface{}
			expected interface{}
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{db.IsNotFound(ret4), true},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBatch(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	batch := db.NewBatch()
	assert.Nil(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.Nil(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.Nil(t, batch.Delete([]byte("k1")))
	assert.Equal(t, 3, batch.Len())
	assert.Nil(t, batch.Write())

	_, err = db.Get([]byte("k1"))
	assert.True(t, db.IsNotFound(err))

	v, err := db.Get([]byte("k2"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), v)
}

func TestLevelDBIterator(t *testing.T) {
	db, err := NewMem()
	assert.Nil(t, err)
	defer db.Close()

	assert.Nil(t, db.Put([]byte("a1"), []byte("1")))
	assert.Nil(t, db.Put([]byte("a2"), []byte("2")))
	assert.Nil(t, db.Put([]byte("b1"), []byte("3")))

	iter := db.NewIterator(kv.Range{Start: []byte("a"), Limit: []byte("b")})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Nil(t, iter.Error())
	assert.Equal(t, []string{"a1", "a2"}, keys)
}
