// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
)

// DistributeOperatorRewards routes an era's operator rewards: it pulls
// amount of token from the router, approves the configured distributor and
// hands it the merkle root of per-operator amounts. Router only. Nothing is
// recorded locally; custody errors propagate.
func (m *Middleware) DistributeOperatorRewards(env Env, token keel.Address, amount *big.Int, root keel.Bytes32) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.distributeOperatorRewards(env, token, amount, root); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) distributeOperatorRewards(env Env, token keel.Address, amount *big.Int, root keel.Bytes32) error {
	logger.Debug("distributing operator rewards", "token", token, "amount", amount)

	if err := m.requireRole(m.storage.router, env.Caller, ErrNotRouter); err != nil {
		return err
	}

	distributor, err := m.storage.operatorRewards.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get operator rewards distributor")
	}

	tok := m.contracts.Token(token)
	if err := tok.TransferFrom(env.Caller, m.addr, amount); err != nil {
		return errors.Wrap(err, "failed to pull rewards")
	}
	if err := tok.Approve(distributor, amount); err != nil {
		return errors.Wrap(err, "failed to approve rewards")
	}
	if err := m.contracts.OperatorRewards(distributor).DistributeRewards(m.addr, token, amount, root); err != nil {
		logger.Info("operator rewards distribution rejected", "token", token, "error", err)
		return err
	}

	logger.Info("distributed operator rewards", "token", token, "amount", amount, "root", root)
	return nil
}

// DistributeStakerRewards routes an era's staker rewards for one vault to
// the staker-rewards contract registered for it, against stake captured at
// ts and capped at the configured admin fee. Router only. The rewards
// contract enforces the fee cap and timestamp rules.
func (m *Middleware) DistributeStakerRewards(env Env, vault, token keel.Address, amount *big.Int, ts uint64) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.distributeStakerRewards(env, vault, token, amount, ts); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) distributeStakerRewards(env Env, vault, token keel.Address, amount *big.Int, ts uint64) error {
	logger.Debug("distributing staker rewards", "vault", vault, "token", token, "amount", amount, "ts", ts)

	if err := m.requireRole(m.storage.router, env.Caller, ErrNotRouter); err != nil {
		return err
	}

	registered, err := m.storage.vaults.Contains(vault)
	if err != nil {
		return err
	}
	if !registered {
		return ErrNotRegisteredVault
	}
	distributor, err := m.storage.vaultRewards.Get(vault)
	if err != nil {
		return errors.Wrap(err, "failed to get vault rewards distributor")
	}

	maxAdminFee, err := cfgMaxAdminFee.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get max admin fee")
	}

	tok := m.contracts.Token(token)
	if err := tok.TransferFrom(env.Caller, m.addr, amount); err != nil {
		return errors.Wrap(err, "failed to pull rewards")
	}
	if err := tok.Approve(distributor, amount); err != nil {
		return errors.Wrap(err, "failed to approve rewards")
	}
	if err := m.contracts.StakerRewards(distributor).DistributeRewards(m.addr, token, amount, ts, maxAdminFee); err != nil {
		logger.Info("staker rewards distribution rejected", "vault", vault, "token", token, "error", err)
		return err
	}

	logger.Info("distributed staker rewards", "vault", vault, "token", token, "amount", amount)
	return nil
}
