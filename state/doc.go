// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the engine's persistent storage slots.
// It follows the flow as below:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ staging ] -> [ kv store ]
//	          |
//	  [ committed store ]
//
// Slots are addressed by (contract address, 32-byte key) and hold raw
// rlp values. There are no account tries or proofs; the host settlement
// layer owns those concerns.
package state
