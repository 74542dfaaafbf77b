// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"github.com/keelchain/keel/keel"
)

// Env carries the ambient authority and clock of one engine call. The host
// ledger sequences calls one at a time and supplies a fresh Env per call;
// Time is the host's current timestamp in unix seconds.
type Env struct {
	Caller keel.Address
	Time   uint64
}
