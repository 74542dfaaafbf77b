// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package middleware implements the staking, validator-election and
// slashing engine of the Keel restaking rollup. It registers operators and
// the stake vaults backing them, answers point-in-time stake queries,
// selects the top-staked operators as the next validator set, and fans
// slash requests out to the vaults' veto slashers.
//
// The host ledger sequences calls one at a time and supplies the ambient
// caller and clock through Env. Every mutating call is atomic: a failed
// call leaves no partial state behind.
package middleware

import (
	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/log"
	"github.com/keelchain/keel/middleware/registry"
	"github.com/keelchain/keel/restaking"
	"github.com/keelchain/keel/solidity"
	"github.com/keelchain/keel/state"
)

var logger = log.WithContext("pkg", "middleware")

// Middleware is the engine facade.
type Middleware struct {
	addr      keel.Address
	state     *state.State
	sctx      *solidity.Context
	contracts restaking.Contracts
	storage   *storage
}

// New creates an engine instance at addr over the given state. The engine's
// address is also its network identity in the restaking protocol; contracts
// resolves every external contract the engine calls out to.
func New(addr keel.Address, st *state.State, contracts restaking.Contracts) *Middleware {
	sctx := solidity.NewContext(addr, st)
	return &Middleware{
		addr:      addr,
		state:     st,
		sctx:      sctx,
		contracts: contracts,
		storage:   newStorage(sctx),
	}
}

// Address returns the engine's own address.
func (m *Middleware) Address() keel.Address {
	return m.addr
}

// Subnetwork returns the engine's slice of the shared restaking protocol:
// its own address at subnetwork index 0.
func (m *Middleware) Subnetwork() restaking.Subnetwork {
	return restaking.NewSubnetwork(m.addr, 0)
}

// Initialize writes the engine configuration, assigns ownership to the
// caller, and introduces the engine to the restaking protocol: it registers
// itself as a network and records itself as that network's middleware.
// Callable once.
func (m *Middleware) Initialize(env Env, params InitParams) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.initialize(env, params); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) initialize(env Env, params InitParams) error {
	owner, err := m.storage.owner.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get owner")
	}
	if !owner.IsZero() {
		return ErrAlreadyInitialized
	}

	vaultVersion := params.AllowedVaultVersion
	if vaultVersion == 0 {
		if vaultVersion, err = m.contracts.VaultFactory().LastVersion(); err != nil {
			return errors.Wrap(err, "failed to get last vault version")
		}
	}

	cfgEraDuration.Set(m.sctx, params.EraDuration)
	cfgMinVaultEpochDuration.Set(m.sctx, params.MinVaultEpochDuration)
	cfgOperatorGracePeriod.Set(m.sctx, params.OperatorGracePeriod)
	cfgVaultGracePeriod.Set(m.sctx, params.VaultGracePeriod)
	cfgMinVetoDuration.Set(m.sctx, params.MinVetoDuration)
	cfgMinSlashExecutionDelay.Set(m.sctx, params.MinSlashExecutionDelay)
	cfgAllowedVaultVersion.Set(m.sctx, vaultVersion)
	cfgAllowedVetoSlasherType.Set(m.sctx, params.AllowedVetoSlasherType)
	cfgAllowedStakerRewardsVersion.Set(m.sctx, params.AllowedStakerRewardsVersion)
	cfgMaxResolverSetEpochsDelay.Set(m.sctx, params.MaxResolverSetEpochsDelay)
	cfgMaxAdminFee.Set(m.sctx, params.MaxAdminFee)

	m.storage.owner.Set(&env.Caller)
	m.storage.slashRequester.Set(&params.SlashRequester)
	m.storage.slashExecutor.Set(&params.SlashExecutor)
	m.storage.router.Set(&params.Router)
	m.storage.collateral.Set(&params.Collateral)
	m.storage.vetoResolver.Set(&params.VetoResolver)
	m.storage.operatorRewards.Set(&params.OperatorRewards)

	if err := m.contracts.NetworkRegistry().RegisterNetwork(m.addr); err != nil {
		return errors.Wrap(err, "failed to register network")
	}
	if err := m.contracts.MiddlewareService().SetMiddleware(m.addr, m.addr); err != nil {
		return errors.Wrap(err, "failed to set middleware")
	}

	logger.Info("initialized", "owner", env.Caller, "router", params.Router)
	return nil
}

// ChangeSlashRequester reassigns the slash-requester role. Owner only.
func (m *Middleware) ChangeSlashRequester(env Env, addr keel.Address) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.changeRole(env, m.storage.slashRequester, addr); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	logger.Info("changed slash requester", "addr", addr)
	return nil
}

// ChangeSlashExecutor reassigns the slash-executor role. Owner only.
func (m *Middleware) ChangeSlashExecutor(env Env, addr keel.Address) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.changeRole(env, m.storage.slashExecutor, addr); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	logger.Info("changed slash executor", "addr", addr)
	return nil
}

func (m *Middleware) changeRole(env Env, role *solidity.Address, addr keel.Address) error {
	if err := m.requireRole(m.storage.owner, env.Caller, ErrNotOwner); err != nil {
		return err
	}
	role.Set(&addr)
	return nil
}

// requireRole checks the caller against a role slot. An empty slot
// authorizes no one.
func (m *Middleware) requireRole(role *solidity.Address, caller keel.Address, notErr error) error {
	holder, err := role.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get role holder")
	}
	if holder.IsZero() || holder != caller {
		return notErr
	}
	return nil
}

//
// Getters - no state change
//

// Owner returns the engine owner, zero before initialization.
func (m *Middleware) Owner() (keel.Address, error) {
	return m.storage.owner.Get()
}

// SlashRequester returns the slash-requester role holder.
func (m *Middleware) SlashRequester() (keel.Address, error) {
	return m.storage.slashRequester.Get()
}

// SlashExecutor returns the slash-executor role holder.
func (m *Middleware) SlashExecutor() (keel.Address, error) {
	return m.storage.slashExecutor.Get()
}

// Router returns the configured router.
func (m *Middleware) Router() (keel.Address, error) {
	return m.storage.router.Get()
}

// Collateral returns the configured collateral token.
func (m *Middleware) Collateral() (keel.Address, error) {
	return m.storage.collateral.Get()
}

// Operators lists every registered operator in registration order.
func (m *Middleware) Operators() ([]keel.Address, error) {
	return listKeys(m.storage.operators)
}

// Vaults lists every registered vault in registration order.
func (m *Middleware) Vaults() ([]keel.Address, error) {
	return listKeys(m.storage.vaults)
}

// IsOperatorRegistered reports whether addr is a registered operator,
// enabled or not.
func (m *Middleware) IsOperatorRegistered(addr keel.Address) (bool, error) {
	return m.storage.operators.Contains(addr)
}

// IsVaultRegistered reports whether addr is a registered vault, enabled or
// not.
func (m *Middleware) IsVaultRegistered(addr keel.Address) (bool, error) {
	return m.storage.vaults.Contains(addr)
}

// VaultStakerRewards returns the staker-rewards contract registered for
// vault, zero when the vault is not registered.
func (m *Middleware) VaultStakerRewards(vault keel.Address) (keel.Address, error) {
	return m.storage.vaultRewards.Get(vault)
}

// OperatorKey returns the signing key recorded for operator, zero if absent.
func (m *Middleware) OperatorKey(operator keel.Address) (keel.Bytes32, error) {
	return m.storage.operatorKeys.Get(operator)
}

func listKeys(reg *registry.Registry) ([]keel.Address, error) {
	var keys []keel.Address
	if err := reg.Iter(func(key keel.Address, _ *registry.Entry) error {
		keys = append(keys, key)
		return nil
	}); err != nil {
		return nil, err
	}
	return keys, nil
}
