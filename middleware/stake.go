// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/middleware/registry"
	"github.com/keelchain/keel/restaking"
)

// VaultStake is one vault's contribution to an operator's aggregate stake.
type VaultStake struct {
	Vault keel.Address
	Stake *big.Int
}

// OperatorStakeAt returns the operator's aggregate stake at ts: the sum of
// its stake in every vault active at ts, in registry order. Zero when the
// operator itself was not active at ts. ts must be strictly in the past; a
// query is only meaningful once the requested moment is final.
func (m *Middleware) OperatorStakeAt(env Env, operator keel.Address, ts uint64) (*big.Int, error) {
	if ts >= env.Time {
		return nil, ErrIncorrectTimestamp
	}

	entry, err := m.storage.operators.Get(operator)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	if entry == nil || !entry.WasActiveAt(ts) {
		return total, nil
	}

	vaults, err := m.activeVaultDelegatorsAt(ts)
	if err != nil {
		return nil, err
	}
	subnetwork := m.Subnetwork()
	for _, vd := range vaults {
		stake, err := vd.delegator.StakeAt(subnetwork, operator, ts, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get stake")
		}
		if stake != nil {
			total.Add(total, stake)
		}
	}
	return total, nil
}

// OperatorStakeVaultsAt breaks the operator's aggregate stake at ts down
// per vault, zero-stake vaults included, in registry order. Empty when the
// operator was not active at ts.
func (m *Middleware) OperatorStakeVaultsAt(env Env, operator keel.Address, ts uint64) ([]VaultStake, error) {
	if ts >= env.Time {
		return nil, ErrIncorrectTimestamp
	}

	entry, err := m.storage.operators.Get(operator)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.WasActiveAt(ts) {
		return nil, nil
	}

	vaults, err := m.activeVaultDelegatorsAt(ts)
	if err != nil {
		return nil, err
	}
	subnetwork := m.Subnetwork()
	stakes := make([]VaultStake, 0, len(vaults))
	for _, vd := range vaults {
		stake, err := vd.delegator.StakeAt(subnetwork, operator, ts, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get stake")
		}
		if stake == nil {
			stake = new(big.Int)
		}
		stakes = append(stakes, VaultStake{Vault: vd.vault, Stake: stake})
	}
	return stakes, nil
}

// ActiveOperatorsStakeAt returns every operator active at ts with its
// aggregate stake, as parallel slices in registry order.
func (m *Middleware) ActiveOperatorsStakeAt(env Env, ts uint64) ([]keel.Address, []*big.Int, error) {
	if ts >= env.Time {
		return nil, nil, ErrIncorrectTimestamp
	}

	vaults, err := m.activeVaultDelegatorsAt(ts)
	if err != nil {
		return nil, nil, err
	}
	subnetwork := m.Subnetwork()

	var (
		operators []keel.Address
		stakes    []*big.Int
	)
	err = m.storage.operators.Iter(func(operator keel.Address, entry *registry.Entry) error {
		if !entry.WasActiveAt(ts) {
			return nil
		}
		total := new(big.Int)
		for _, vd := range vaults {
			stake, err := vd.delegator.StakeAt(subnetwork, operator, ts, nil)
			if err != nil {
				return errors.Wrap(err, "failed to get stake")
			}
			if stake != nil {
				total.Add(total, stake)
			}
		}
		operators = append(operators, operator)
		stakes = append(stakes, total)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return operators, stakes, nil
}

type vaultDelegator struct {
	vault     keel.Address
	delegator restaking.Delegator
}

// activeVaultDelegatorsAt lists the vaults active at ts in registry order,
// with their delegators resolved once for the call.
func (m *Middleware) activeVaultDelegatorsAt(ts uint64) ([]vaultDelegator, error) {
	var active []vaultDelegator
	err := m.storage.vaults.Iter(func(vault keel.Address, entry *registry.Entry) error {
		if !entry.WasActiveAt(ts) {
			return nil
		}
		delegatorAddr, err := m.contracts.Vault(vault).Delegator()
		if err != nil {
			return errors.Wrap(err, "failed to get vault delegator")
		}
		active = append(active, vaultDelegator{vault: vault, delegator: m.contracts.Delegator(delegatorAddr)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return active, nil
}
