// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry implements the time-windowed membership registry shared
// by the operator and vault lifecycles. Each member carries an activation
// window [enabledAt, disabledAt] and an optional pinned address; members are
// iterated in registration order.
package registry

import (
	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/middleware/linkedlist"
	"github.com/keelchain/keel/reverts"
	"github.com/keelchain/keel/solidity"
)

var (
	ErrAlreadyAdded   = reverts.New("already added")
	ErrAlreadyEnabled = reverts.New("already enabled")
	ErrNotEnabled     = reverts.New("not enabled")
	ErrNotListed      = reverts.New("not listed")
)

// Entry is the stored membership record. DisabledAt of zero means currently
// enabled; EnabledAt is set once at insertion and never reset.
type Entry struct {
	EnabledAt  uint64
	DisabledAt uint64
	Pinned     keel.Address
}

// IsEnabled reports whether the entry is currently enabled.
func (e *Entry) IsEnabled() bool {
	return e.DisabledAt == 0
}

// WasActiveAt reports whether the entry's window covered ts.
func (e *Entry) WasActiveAt(ts uint64) bool {
	return WasActiveAt(e.EnabledAt, e.DisabledAt, ts)
}

// WasActiveAt is the temporal membership predicate, inclusive on both
// boundaries. It is the single source of truth for every historical query.
func WasActiveAt(enabledAt, disabledAt, ts uint64) bool {
	return enabledAt != 0 && enabledAt <= ts && (disabledAt == 0 || disabledAt >= ts)
}

func nameToSlot(name string) keel.Bytes32 {
	return keel.BytesToBytes32([]byte(name))
}

// Registry is a named registry rooted in the storage of one contract
// context. Distinct names never share slots.
type Registry struct {
	entries *solidity.Mapping[keel.Address, *Entry]
	order   *linkedlist.LinkedList
}

// New creates a registry over the given context, rooted at slots derived
// from name.
func New(sctx *solidity.Context, name string) *Registry {
	return &Registry{
		entries: solidity.NewMapping[keel.Address, *Entry](sctx, nameToSlot(name)),
		order: linkedlist.New(
			sctx,
			nameToSlot(name+"-head"),
			nameToSlot(name+"-tail"),
			nameToSlot(name+"-count"),
		),
	}
}

// Append inserts key at the tail of the registration order, enabled as of
// now.
func (r *Registry) Append(key keel.Address, pinned keel.Address, now uint64) error {
	if now == 0 {
		return errors.New("zero registration time")
	}
	existing, err := r.Get(key)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyAdded
	}

	if err := r.entries.Set(key, &Entry{EnabledAt: now, Pinned: pinned}); err != nil {
		return errors.Wrap(err, "failed to set entry")
	}
	return r.order.Add(key)
}

// Enable clears a disabled member's DisabledAt back to zero. EnabledAt is
// not touched: the window keeps its original opening.
func (r *Registry) Enable(key keel.Address) error {
	entry, err := r.Get(key)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrNotListed
	}
	if entry.IsEnabled() {
		return ErrAlreadyEnabled
	}

	entry.DisabledAt = 0
	if err := r.entries.Set(key, entry); err != nil {
		return errors.Wrap(err, "failed to set entry")
	}
	return nil
}

// Disable closes an enabled member's window at now.
func (r *Registry) Disable(key keel.Address, now uint64) error {
	entry, err := r.Get(key)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrNotListed
	}
	if !entry.IsEnabled() {
		return ErrNotEnabled
	}

	entry.DisabledAt = now
	if err := r.entries.Set(key, entry); err != nil {
		return errors.Wrap(err, "failed to set entry")
	}
	return nil
}

// Remove deletes the entry and unlinks it from the registration order. The
// grace-period precondition is the caller's concern.
func (r *Registry) Remove(key keel.Address) error {
	entry, err := r.Get(key)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrNotListed
	}

	if err := r.entries.Set(key, nil); err != nil {
		return errors.Wrap(err, "failed to clear entry")
	}
	return r.order.Remove(key)
}

// Get returns the entry of key, nil when not listed.
func (r *Registry) Get(key keel.Address) (*Entry, error) {
	entry, err := r.entries.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get entry")
	}
	return entry, nil
}

// Contains reports whether key is listed.
func (r *Registry) Contains(key keel.Address) (bool, error) {
	has, err := r.entries.Has(key)
	if err != nil {
		return false, errors.Wrap(err, "failed to check entry")
	}
	return has, nil
}

// Len returns the number of listed members.
func (r *Registry) Len() (uint64, error) {
	return r.order.Len()
}

// Iter walks the registry in registration order.
func (r *Registry) Iter(callback func(key keel.Address, entry *Entry) error) error {
	return r.order.Iter(func(key keel.Address) error {
		entry, err := r.Get(key)
		if err != nil {
			return err
		}
		if entry == nil {
			return errors.Errorf("entry missing for listed key %v", key)
		}
		return callback(key, entry)
	})
}
