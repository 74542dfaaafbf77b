// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keelchain/keel/kv"
	"github.com/keelchain/keel/lvldb"
)

func TestBucket(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer store.Close()

	b1 := kv.Bucket("b1-").NewStore(store)
	b2 := kv.Bucket("b2-").NewStore(store)

	assert.Nil(t, b1.Put([]byte("key"), []byte("v1")))
	assert.Nil(t, b2.Put([]byte("key"), []byte("v2")))

	v1, err := b1.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), v1)

	v2, err := b2.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), v2)

	// raw keys carry the bucket prefix
	raw, err := store.Get([]byte("b1-key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), raw)

	// delete from one bucket leaves the other intact
	assert.Nil(t, b1.Delete([]byte("key")))
	_, err = b1.Get([]byte("key"))
	assert.True(t, b1.IsNotFound(err))

	has, err := b2.Has([]byte("key"))
	assert.Nil(t, err)
	assert.True(t, has)
}

func TestBucketBatch(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer store.Close()

	b := kv.Bucket("x-").NewStore(store)

	batch := b.NewBatch()
	assert.Nil(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.Nil(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.Equal(t, 2, batch.Len())

	// nothing lands before Write
	has, err := b.Has([]byte("k1"))
	assert.Nil(t, err)
	assert.False(t, has)

	assert.Nil(t, batch.Write())

	v, err := b.Get([]byte("k2"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), v)
}

func TestBucketIterator(t *testing.T) {
	store, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer store.Close()

	b := kv.Bucket("it-").NewStore(store)
	assert.Nil(t, b.Put([]byte("a"), []byte("1")))
	assert.Nil(t, b.Put([]byte("b"), []byte("2")))
	assert.Nil(t, store.Put([]byte("zz-other"), []byte("3")))

	iter := b.NewIterator(kv.Range{})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		// bucket prefix is stripped
		keys = append(keys, string(iter.Key()))
	}
	assert.Nil(t, iter.Error())
	assert.Equal(t, []string{"a", "b"}, keys)
}
