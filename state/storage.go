// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// StorageEncoder implement it to customize encoding process for storage data.
// Returning empty bytes marks the slot deleted.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder implement it to customize decoding process for storage data.
// It is fed the raw slot content, empty when the slot was never written.
type StorageDecoder interface {
	Decode([]byte) error
}
