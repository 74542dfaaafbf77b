// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/middleware/registry"
)

// RegisterOperator lists the caller as an operator, enabled as of now. The
// caller must be a recognized operator entity and have opted in to this
// network.
func (m *Middleware) RegisterOperator(env Env) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.registerOperator(env); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) registerOperator(env Env) error {
	logger.Debug("registering operator", "operator", env.Caller)

	isEntity, err := m.contracts.OperatorRegistry().IsEntity(env.Caller)
	if err != nil {
		return errors.Wrap(err, "failed to check operator entity")
	}
	if !isEntity {
		return ErrOperatorDoesNotExist
	}

	optedIn, err := m.contracts.OptInService().IsOptedIn(env.Caller, m.addr)
	if err != nil {
		return errors.Wrap(err, "failed to check operator opt-in")
	}
	if !optedIn {
		return ErrOperatorDoesNotOptIn
	}

	if err := m.storage.operators.Append(env.Caller, keel.Address{}, env.Time); err != nil {
		logger.Info("register operator failed", "operator", env.Caller, "error", err)
		return err
	}

	metricOperatorRegisteredCount().Add(1)
	logger.Info("registered operator", "operator", env.Caller)
	return nil
}

// EnableOperator re-enables the caller's own registration.
func (m *Middleware) EnableOperator(env Env) error {
	logger.Debug("enabling operator", "operator", env.Caller)

	checkpoint := m.state.NewCheckpoint()
	if err := m.storage.operators.Enable(env.Caller); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// DisableOperator disables the caller's own registration as of now.
func (m *Middleware) DisableOperator(env Env) error {
	logger.Debug("disabling operator", "operator", env.Caller)

	checkpoint := m.state.NewCheckpoint()
	if err := m.storage.operators.Disable(env.Caller, env.Time); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// UnregisterOperator removes a disabled operator once its grace period has
// elapsed. Any caller may invoke it: removing a deactivated operator has no
// funds-custody implication.
func (m *Middleware) UnregisterOperator(env Env, operator keel.Address) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.unregisterOperator(env, operator); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) unregisterOperator(env Env, operator keel.Address) error {
	logger.Debug("unregistering operator", "operator", operator, "caller", env.Caller)

	entry, err := m.storage.operators.Get(operator)
	if err != nil {
		return err
	}
	if entry == nil {
		return registry.ErrNotListed
	}

	grace, err := cfgOperatorGracePeriod.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get operator grace period")
	}
	if entry.DisabledAt == 0 || env.Time < entry.DisabledAt+grace {
		return ErrOperatorGracePeriodNotPassed
	}

	if err := m.storage.operators.Remove(operator); err != nil {
		return err
	}

	logger.Info("unregistered operator", "operator", operator)
	return nil
}

// RegisterOperatorKey records the caller's signing key, overwriting any
// previous record. The key is an out-of-band record for the external
// signing scheme: it is independent of registration and enable state and
// survives unregistration.
func (m *Middleware) RegisterOperatorKey(env Env, key keel.Bytes32) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.registerOperatorKey(env, key); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) registerOperatorKey(env Env, key keel.Bytes32) error {
	isEntity, err := m.contracts.OperatorRegistry().IsEntity(env.Caller)
	if err != nil {
		return errors.Wrap(err, "failed to check operator entity")
	}
	if !isEntity {
		return ErrOperatorDoesNotExist
	}

	if err := m.storage.operatorKeys.Set(env.Caller, key); err != nil {
		return errors.Wrap(err, "failed to set operator key")
	}

	logger.Debug("registered operator key", "operator", env.Caller, "key", key)
	return nil
}
