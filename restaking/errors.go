// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restaking

import "github.com/keelchain/keel/reverts"

// Named conditions surfaced by conforming protocol contracts. The engine
// propagates them unmodified; callers match with errors.Is.
var (
	ErrInsufficientSlash       = reverts.New("insufficient slash")
	ErrInvalidCaptureTimestamp = reverts.New("invalid capture timestamp")
	ErrVetoPeriodNotEnded      = reverts.New("veto period not ended")
	ErrVetoPeriodEnded         = reverts.New("veto period ended")
	ErrSlashPeriodEnded        = reverts.New("slash period ended")
	ErrSlashRequestCompleted   = reverts.New("slash request completed")
	ErrNotResolver             = reverts.New("not resolver")
	ErrHighAdminFee            = reverts.New("high admin fee")
)
