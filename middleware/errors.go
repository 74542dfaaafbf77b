// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"github.com/keelchain/keel/reverts"
)

// Named abort conditions of the engine. Registry-level conditions
// (already added / already enabled / not enabled / not listed) are declared
// in middleware/registry; protocol conditions surfaced by external
// contracts are declared in restaking.
var (
	ErrAlreadyInitialized = reverts.New("already initialized")

	// authorization
	ErrNotOwner          = reverts.New("not owner")
	ErrNotRouter         = reverts.New("not router")
	ErrNotSlashRequester = reverts.New("not slash requester")
	ErrNotSlashExecutor  = reverts.New("not slash executor")
	ErrNotVaultOwner     = reverts.New("not vault owner")

	// operator lifecycle
	ErrOperatorDoesNotExist         = reverts.New("operator does not exist")
	ErrOperatorDoesNotOptIn         = reverts.New("operator does not opt in")
	ErrOperatorGracePeriodNotPassed = reverts.New("operator grace period not passed")

	// vault admission
	ErrNonFactoryVault                  = reverts.New("non-factory vault")
	ErrVaultWrongEpochDuration          = reverts.New("vault wrong epoch duration")
	ErrUnknownCollateral                = reverts.New("unknown collateral")
	ErrDelegatorNotInitialized          = reverts.New("delegator not initialized")
	ErrUnsupportedDelegatorHook         = reverts.New("unsupported delegator hook")
	ErrUnsupportedBurner                = reverts.New("unsupported burner")
	ErrSlasherNotInitialized            = reverts.New("slasher not initialized")
	ErrIncompatibleSlasherType          = reverts.New("incompatible slasher type")
	ErrBurnerHookNotSupported           = reverts.New("burner hook not supported")
	ErrVetoDurationTooShort             = reverts.New("veto duration too short")
	ErrVetoDurationTooLong              = reverts.New("veto duration too long")
	ErrResolverMismatch                 = reverts.New("resolver mismatch")
	ErrResolverSetDelayTooLong          = reverts.New("resolver set delay too long")
	ErrNonFactoryStakerRewards          = reverts.New("non-factory staker rewards")
	ErrIncompatibleStakerRewardsVersion = reverts.New("incompatible staker rewards version")
	ErrInvalidStakerRewardsVault        = reverts.New("invalid staker rewards vault")
	ErrVaultGracePeriodNotPassed        = reverts.New("vault grace period not passed")

	// temporal / referential
	ErrIncorrectTimestamp    = reverts.New("incorrect timestamp")
	ErrZeroMaxValidators     = reverts.New("zero max validators")
	ErrNotRegisteredOperator = reverts.New("not registered operator")
	ErrNotRegisteredVault    = reverts.New("not registered vault")
)
