// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket provides logical bucket for kv store.
type Bucket string

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) ([]byte, error) {
			return src.Get(b.makeKey(key))
		},
		func(key []byte) (bool, error) {
			return src.Has(b.makeKey(key))
		},
		src.IsNotFound,
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) error {
			return src.Put(b.makeKey(key), val)
		},
		func(key []byte) error {
			return src.Delete(b.makeKey(key))
		},
	}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		NewBatchFunc
		NewIterFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func() Batch {
			batch := src.NewBatch()
			return &struct {
				Putter
				LenFunc
				WriteFunc
			}{
				b.NewPutter(batch),
				batch.Len,
				batch.Write,
			}
		},
		func(r Range) Iterator {
			r.Start = b.makeKey(r.Start)
			if len(r.Limit) == 0 {
				r.Limit = util.BytesPrefix([]byte(b)).Limit
			} else {
				r.Limit = b.makeKey(r.Limit)
			}
			iter := src.NewIterator(r)
			return &struct {
				NextFunc
				ReleaseFunc
				ErrorFunc
				KeyFunc
				ValueFunc
			}{
				iter.Next,
				iter.Release,
				iter.Error,
				// strip the bucket
				func() []byte { return iter.Key()[len(b):] },
				iter.Value,
			}
		},
	}
}

func (b Bucket) makeKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}
