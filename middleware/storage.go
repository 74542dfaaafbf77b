// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/middleware/registry"
	"github.com/keelchain/keel/solidity"
)

var (
	slotOwner           = nameToSlot("middleware-owner")
	slotSlashRequester  = nameToSlot("middleware-slash-requester")
	slotSlashExecutor   = nameToSlot("middleware-slash-executor")
	slotRouter          = nameToSlot("middleware-router")
	slotCollateral      = nameToSlot("middleware-collateral")
	slotVetoResolver    = nameToSlot("middleware-veto-resolver")
	slotOperatorRewards = nameToSlot("middleware-operator-rewards")
	slotOperatorKeys    = nameToSlot("middleware-operator-keys")
	slotVaultRewards    = nameToSlot("middleware-vault-rewards")
)

func nameToSlot(name string) keel.Bytes32 {
	return keel.BytesToBytes32([]byte(name))
}

// storage bundles the engine's persistent layout: the role and address
// slots, the operator and vault registries, and the per-address association
// mappings.
type storage struct {
	owner           *solidity.Address
	slashRequester  *solidity.Address
	slashExecutor   *solidity.Address
	router          *solidity.Address
	collateral      *solidity.Address
	vetoResolver    *solidity.Address
	operatorRewards *solidity.Address

	operators *registry.Registry
	vaults    *registry.Registry

	operatorKeys *solidity.Mapping[keel.Address, keel.Bytes32]
	vaultRewards *solidity.Mapping[keel.Address, keel.Address]
}

func newStorage(sctx *solidity.Context) *storage {
	return &storage{
		owner:           solidity.NewAddress(sctx, slotOwner),
		slashRequester:  solidity.NewAddress(sctx, slotSlashRequester),
		slashExecutor:   solidity.NewAddress(sctx, slotSlashExecutor),
		router:          solidity.NewAddress(sctx, slotRouter),
		collateral:      solidity.NewAddress(sctx, slotCollateral),
		vetoResolver:    solidity.NewAddress(sctx, slotVetoResolver),
		operatorRewards: solidity.NewAddress(sctx, slotOperatorRewards),

		operators: registry.New(sctx, "middleware-operators"),
		vaults:    registry.New(sctx, "middleware-vaults"),

		operatorKeys: solidity.NewMapping[keel.Address, keel.Bytes32](sctx, slotOperatorKeys),
		vaultRewards: solidity.NewMapping[keel.Address, keel.Address](sctx, slotVaultRewards),
	}
}
