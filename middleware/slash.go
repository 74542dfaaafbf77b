// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
)

// VaultSlash names an amount to slash from one vault.
type VaultSlash struct {
	Vault  keel.Address
	Amount *big.Int
}

// SlashRequest asks to slash an operator across one or more vaults, against
// stake captured at Ts.
type SlashRequest struct {
	Operator keel.Address
	Ts       uint64
	Vaults   []VaultSlash
}

// SlashID identifies a pending slash request: the vault it lives on and the
// opaque index its slasher assigned.
type SlashID struct {
	Vault keel.Address
	Index uint64
}

// RequestSlash fans a batch of slash requests out to the vaults' slashers
// and returns the assigned request indices. Slash-requester role only.
// Registration of each operator and vault is checked live; sufficiency of
// stake at the capture timestamp is the slasher's check, and any rejection
// aborts the whole batch.
func (m *Middleware) RequestSlash(env Env, requests []SlashRequest) ([]SlashID, error) {
	checkpoint := m.state.NewCheckpoint()
	ids, err := m.requestSlash(env, requests)
	if err != nil {
		m.state.RevertTo(checkpoint)
		return nil, err
	}
	return ids, nil
}

func (m *Middleware) requestSlash(env Env, requests []SlashRequest) ([]SlashID, error) {
	if err := m.requireRole(m.storage.slashRequester, env.Caller, ErrNotSlashRequester); err != nil {
		return nil, err
	}

	subnetwork := m.Subnetwork()
	var ids []SlashID
	for _, req := range requests {
		registered, err := m.storage.operators.Contains(req.Operator)
		if err != nil {
			return nil, err
		}
		if !registered {
			return nil, ErrNotRegisteredOperator
		}

		for _, vs := range req.Vaults {
			registered, err := m.storage.vaults.Contains(vs.Vault)
			if err != nil {
				return nil, err
			}
			if !registered {
				return nil, ErrNotRegisteredVault
			}

			slasherAddr, err := m.contracts.Vault(vs.Vault).Slasher()
			if err != nil {
				return nil, errors.Wrap(err, "failed to get vault slasher")
			}
			index, err := m.contracts.Slasher(slasherAddr).RequestSlash(subnetwork, req.Operator, vs.Amount, req.Ts, nil)
			if err != nil {
				logger.Info("slash request rejected", "operator", req.Operator, "vault", vs.Vault, "error", err)
				return nil, err
			}

			ids = append(ids, SlashID{Vault: vs.Vault, Index: index})
			logger.Info("requested slash", "operator", req.Operator, "vault", vs.Vault, "amount", vs.Amount, "index", index)
		}
	}

	metricSlashRequestCount().Add(int64(len(ids)))
	return ids, nil
}

// ExecuteSlash executes pending slash requests past their veto deadlines
// and returns the total amount slashed. Slash-executor role only. The
// veto/deadline state machine lives in each vault's slasher; its rejections
// abort the whole batch.
func (m *Middleware) ExecuteSlash(env Env, ids []SlashID) (*big.Int, error) {
	checkpoint := m.state.NewCheckpoint()
	total, err := m.executeSlash(env, ids)
	if err != nil {
		m.state.RevertTo(checkpoint)
		return nil, err
	}
	return total, nil
}

func (m *Middleware) executeSlash(env Env, ids []SlashID) (*big.Int, error) {
	if err := m.requireRole(m.storage.slashExecutor, env.Caller, ErrNotSlashExecutor); err != nil {
		return nil, err
	}

	total := new(big.Int)
	for _, id := range ids {
		registered, err := m.storage.vaults.Contains(id.Vault)
		if err != nil {
			return nil, err
		}
		if !registered {
			return nil, ErrNotRegisteredVault
		}

		slasherAddr, err := m.contracts.Vault(id.Vault).Slasher()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get vault slasher")
		}
		slashed, err := m.contracts.Slasher(slasherAddr).ExecuteSlash(id.Index, nil)
		if err != nil {
			logger.Info("slash execution rejected", "vault", id.Vault, "index", id.Index, "error", err)
			return nil, err
		}
		if slashed != nil {
			total.Add(total, slashed)
		}

		logger.Info("executed slash", "vault", id.Vault, "index", id.Index, "amount", slashed)
	}

	metricSlashExecutedCount().Add(int64(len(ids)))
	return total, nil
}
