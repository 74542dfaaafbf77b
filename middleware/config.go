// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/solidity"
)

// Numeric engine parameters, written once by Initialize. Defaults match the
// deployed configuration: one-day eras, vault epochs of at least two eras,
// a seven-day operator and two-day vault grace period.
var (
	cfgEraDuration                 = solidity.NewConfigVariable("middleware-era-duration", 86400)
	cfgMinVaultEpochDuration       = solidity.NewConfigVariable("middleware-min-vault-epoch-duration", 172800)
	cfgOperatorGracePeriod         = solidity.NewConfigVariable("middleware-operator-grace-period", 604800)
	cfgVaultGracePeriod            = solidity.NewConfigVariable("middleware-vault-grace-period", 172800)
	cfgMinVetoDuration             = solidity.NewConfigVariable("middleware-min-veto-duration", 7200)
	cfgMinSlashExecutionDelay      = solidity.NewConfigVariable("middleware-min-slash-execution-delay", 300)
	cfgAllowedVaultVersion         = solidity.NewConfigVariable("middleware-allowed-vault-version", 0)
	cfgAllowedVetoSlasherType      = solidity.NewConfigVariable("middleware-allowed-veto-slasher-type", 0)
	cfgAllowedStakerRewardsVersion = solidity.NewConfigVariable("middleware-allowed-staker-rewards-version", 1)
	cfgMaxResolverSetEpochsDelay   = solidity.NewConfigVariable("middleware-max-resolver-set-epochs-delay", 300)
	cfgMaxAdminFee                 = solidity.NewConfigVariable("middleware-max-admin-fee", 3)
)

// InitParams are the deployment parameters Initialize writes into the
// engine's storage. Everything but the three role slots is immutable
// thereafter.
type InitParams struct {
	EraDuration                 uint64
	MinVaultEpochDuration       uint64
	OperatorGracePeriod         uint64
	VaultGracePeriod            uint64
	MinVetoDuration             uint64
	MinSlashExecutionDelay      uint64
	AllowedVaultVersion         uint64 // zero resolves to the vault factory's last version
	AllowedVetoSlasherType      uint64
	AllowedStakerRewardsVersion uint64
	MaxResolverSetEpochsDelay   uint64
	MaxAdminFee                 uint64

	Collateral      keel.Address
	Router          keel.Address
	VetoResolver    keel.Address
	OperatorRewards keel.Address
	SlashRequester  keel.Address
	SlashExecutor   keel.Address
}

// DefaultInitParams returns the parameter set the system ships with. The
// veto resolver and both slash roles default to the router.
func DefaultInitParams(collateral, router, operatorRewards keel.Address) InitParams {
	return InitParams{
		EraDuration:                 cfgEraDuration.Default(),
		MinVaultEpochDuration:       cfgMinVaultEpochDuration.Default(),
		OperatorGracePeriod:         cfgOperatorGracePeriod.Default(),
		VaultGracePeriod:            cfgVaultGracePeriod.Default(),
		MinVetoDuration:             cfgMinVetoDuration.Default(),
		MinSlashExecutionDelay:      cfgMinSlashExecutionDelay.Default(),
		AllowedVetoSlasherType:      cfgAllowedVetoSlasherType.Default(),
		AllowedStakerRewardsVersion: cfgAllowedStakerRewardsVersion.Default(),
		MaxResolverSetEpochsDelay:   cfgMaxResolverSetEpochsDelay.Default(),
		MaxAdminFee:                 cfgMaxAdminFee.Default(),

		Collateral:      collateral,
		Router:          router,
		VetoResolver:    router,
		OperatorRewards: operatorRewards,
		SlashRequester:  router,
		SlashExecutor:   router,
	}
}
