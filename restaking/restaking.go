// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package restaking declares the external restaking-protocol surface the
// middleware engine calls out to: entity registries, vaults with their
// delegators and slashers, and the rewards distribution contracts. The
// engine never trusts these collaborators; every result is fallible and
// re-validated at the call site.
package restaking

import (
	"math/big"

	"github.com/keelchain/keel/keel"
)

// OperatorRegistry is the protocol-wide operator identity registry.
type OperatorRegistry interface {
	IsEntity(addr keel.Address) (bool, error)
}

// OptInService records which operators have opted in to which networks.
type OptInService interface {
	IsOptedIn(who, network keel.Address) (bool, error)
}

// NetworkRegistry is the protocol-wide network identity registry.
type NetworkRegistry interface {
	RegisterNetwork(network keel.Address) error
}

// MiddlewareService links a network to its middleware contract.
type MiddlewareService interface {
	SetMiddleware(network, middleware keel.Address) error
}

// VaultFactory tracks vaults deployed through the canonical factory
// and their implementation versions.
type VaultFactory interface {
	IsEntity(addr keel.Address) (bool, error)
	Version(addr keel.Address) (uint64, error)
	LastVersion() (uint64, error)
}

// Vault is the stake custody contract backing one or more operators.
type Vault interface {
	EpochDuration() (uint64, error)
	Collateral() (keel.Address, error)
	Delegator() (keel.Address, error)
	Slasher() (keel.Address, error)
	Burner() (keel.Address, error)
	Owner() (keel.Address, error)
}

// Delegator allocates a vault's stake to (subnetwork, operator) pairs and
// answers historical stake queries against its checkpointed balances.
type Delegator interface {
	IsInitialized() (bool, error)
	Hook() (keel.Address, error)
	SetMaxNetworkLimit(identifier uint64, amount *big.Int) error
	StakeAt(subnetwork Subnetwork, operator keel.Address, ts uint64, hints []byte) (*big.Int, error)
}

// Slasher is a veto-capable slashing contract attached to a vault. Slash
// requests are opaque indices owned by the slasher; the veto/execute
// deadline state machine lives entirely on its side.
type Slasher interface {
	IsInitialized() (bool, error)
	Type() (uint64, error)
	IsBurnerHook() (bool, error)
	VetoDuration() (uint64, error)
	Resolver(subnetwork Subnetwork) (keel.Address, error)
	ResolverSetEpochsDelay() (uint64, error)
	RequestSlash(subnetwork Subnetwork, operator keel.Address, amount *big.Int, captureTs uint64, hints []byte) (uint64, error)
	ExecuteSlash(index uint64, hints []byte) (*big.Int, error)
	VetoSlash(index uint64, hints []byte) error
}

// RewardsFactory tracks staker-rewards contracts deployed through the
// canonical factory.
type RewardsFactory interface {
	IsEntity(addr keel.Address) (bool, error)
}

// StakerRewards distributes rewards to a vault's stakers pro rata to their
// historical stake. The timestamp and admin-fee rules are enforced on its
// side.
type StakerRewards interface {
	Version() (uint64, error)
	Vault() (keel.Address, error)
	DistributeRewards(network, token keel.Address, amount *big.Int, captureTs uint64, maxAdminFee uint64) error
}

// OperatorRewards distributes rewards to operators against a merkle root of
// per-operator amounts.
type OperatorRewards interface {
	DistributeRewards(network, token keel.Address, amount *big.Int, root keel.Bytes32) error
}

// Token is the ERC20-shaped custody surface of the collateral and reward
// tokens. Handles act on behalf of the engine.
type Token interface {
	BalanceOf(addr keel.Address) (*big.Int, error)
	Transfer(to keel.Address, amount *big.Int) error
	TransferFrom(from, to keel.Address, amount *big.Int) error
	Approve(spender keel.Address, amount *big.Int) error
}

// Contracts resolves the external contracts the engine depends on. The
// singleton registries are protocol-wide; vaults, delegators, slashers,
// rewards contracts and tokens are resolved per address as recorded in the
// engine's own registries.
type Contracts interface {
	OperatorRegistry() OperatorRegistry
	OptInService() OptInService
	NetworkRegistry() NetworkRegistry
	MiddlewareService() MiddlewareService
	VaultFactory() VaultFactory
	RewardsFactory() RewardsFactory

	Vault(addr keel.Address) Vault
	Delegator(addr keel.Address) Delegator
	Slasher(addr keel.Address) Slasher
	StakerRewards(addr keel.Address) StakerRewards
	OperatorRewards(addr keel.Address) OperatorRewards
	Token(addr keel.Address) Token
}
