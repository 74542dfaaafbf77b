// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package linkedlist keeps an insertion-ordered set of addresses in contract
// storage: head/tail/count slots plus next/prev mappings. Registries use it
// to make iteration order equal registration order.
package linkedlist

import (
	"math/big"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/solidity"
)

type LinkedList struct {
	head  *solidity.Address
	tail  *solidity.Address
	count *solidity.Uint256
	next  *solidity.Mapping[keel.Address, keel.Address]
	prev  *solidity.Mapping[keel.Address, keel.Address]
}

// New creates a linked list rooted at the given head, tail and count slots.
// The next/prev mappings derive their entries from the head and tail
// positions, which never collides with the root slots themselves.
func New(sctx *solidity.Context, headPos, tailPos, countPos keel.Bytes32) *LinkedList {
	return &LinkedList{
		head:  solidity.NewAddress(sctx, headPos),
		tail:  solidity.NewAddress(sctx, tailPos),
		count: solidity.NewUint256(sctx, countPos),
		next:  solidity.NewMapping[keel.Address, keel.Address](sctx, headPos),
		prev:  solidity.NewMapping[keel.Address, keel.Address](sctx, tailPos),
	}
}

// Add appends an address to the tail of the list.
func (l *LinkedList) Add(address keel.Address) error {
	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		// the list is currently empty, set this entry to head & tail
		l.head.Set(&address)
		l.tail.Set(&address)
		return l.count.Add(big.NewInt(1))
	}

	if err := l.next.Set(oldTail, address); err != nil {
		return err
	}
	if err := l.prev.Set(address, oldTail); err != nil {
		return err
	}
	l.tail.Set(&address)

	return l.count.Add(big.NewInt(1))
}

// Remove extracts an address from anywhere in the list, reconnecting the
// adjacent nodes and clearing the removed node's pointers. Removing an
// address that is not in the list is a no-op.
func (l *LinkedList) Remove(address keel.Address) error {
	if address.IsZero() {
		return nil
	}

	prev, err := l.prev.Get(address)
	if err != nil {
		return err
	}
	next, err := l.next.Get(address)
	if err != nil {
		return err
	}

	if prev.IsZero() && !l.isHead(address) {
		return nil // not in list
	}

	if !prev.IsZero() {
		if err := l.next.Set(prev, next); err != nil {
			return err
		}
	} else {
		l.head.Set(&next)
	}

	if !next.IsZero() {
		if err := l.prev.Set(next, prev); err != nil {
			return err
		}
	} else {
		l.tail.Set(&prev)
	}

	// Clear the removed node's pointers
	if err = l.next.Set(address, keel.Address{}); err != nil {
		return err
	}
	if err = l.prev.Set(address, keel.Address{}); err != nil {
		return err
	}

	return l.count.Sub(big.NewInt(1))
}

// Len returns the current number of addresses in the list.
func (l *LinkedList) Len() (uint64, error) {
	count, err := l.count.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Iter traverses the list in insertion order, calling callback for each
// address until completion or error.
func (l *LinkedList) Iter(callback func(keel.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		if err := callback(ptr); err != nil {
			return err
		}

		next, err := l.next.Get(ptr)
		if err != nil {
			return err
		}
		if next.IsZero() {
			break
		}
		ptr = next
	}

	return nil
}

func (l *LinkedList) isHead(address keel.Address) bool {
	head, err := l.head.Get()
	if err != nil {
		return false
	}
	return head == address
}
