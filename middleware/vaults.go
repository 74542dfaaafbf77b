// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/middleware/registry"
)

// unlimitedStake is the network stake-limit ceiling raised on a vault's
// delegator at registration: 2^256-1, the per-vault cap is the vault
// owner's business thereafter.
var unlimitedStake = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// RegisterVault lists a vault after running the admission checklist against
// the vault, its delegator, its slasher (when attached) and the supplied
// staker-rewards contract. The caller must be the vault's administrative
// owner; that owner is pinned into the registry entry and gates the vault's
// lifecycle from then on. Registration also raises the vault's network
// stake-limit ceiling on its delegator.
func (m *Middleware) RegisterVault(env Env, vault, stakerRewards keel.Address) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.registerVault(env, vault, stakerRewards); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) registerVault(env Env, vault, stakerRewards keel.Address) error {
	logger.Debug("registering vault", "vault", vault, "stakerRewards", stakerRewards, "caller", env.Caller)

	owner, err := m.checkVaultAdmission(env, vault, stakerRewards)
	if err != nil {
		logger.Info("vault admission failed", "vault", vault, "error", err)
		return err
	}

	if err := m.storage.vaults.Append(vault, owner, env.Time); err != nil {
		logger.Info("register vault failed", "vault", vault, "error", err)
		return err
	}
	if err := m.storage.vaultRewards.Set(vault, stakerRewards); err != nil {
		return errors.Wrap(err, "failed to set vault rewards")
	}

	delegatorAddr, err := m.contracts.Vault(vault).Delegator()
	if err != nil {
		return errors.Wrap(err, "failed to get vault delegator")
	}
	subnetwork := m.Subnetwork()
	if err := m.contracts.Delegator(delegatorAddr).SetMaxNetworkLimit(subnetwork.Index(), unlimitedStake); err != nil {
		return errors.Wrap(err, "failed to set max network limit")
	}

	metricVaultRegisteredCount().Add(1)
	logger.Info("registered vault", "vault", vault, "owner", owner)
	return nil
}

// checkVaultAdmission runs the ordered admission checklist and returns the
// vault's administrative owner. Each failure maps to a distinct condition;
// no state is touched.
func (m *Middleware) checkVaultAdmission(env Env, vault, stakerRewards keel.Address) (keel.Address, error) {
	if vault.IsZero() {
		return keel.Address{}, ErrNonFactoryVault
	}
	isEntity, err := m.contracts.VaultFactory().IsEntity(vault)
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to check vault entity")
	}
	if !isEntity {
		return keel.Address{}, ErrNonFactoryVault
	}
	version, err := m.contracts.VaultFactory().Version(vault)
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get vault version")
	}
	allowedVersion, err := cfgAllowedVaultVersion.Get(m.sctx)
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get allowed vault version")
	}
	if version != allowedVersion {
		return keel.Address{}, ErrNonFactoryVault
	}

	v := m.contracts.Vault(vault)

	epochDuration, err := v.EpochDuration()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get epoch duration")
	}
	minEpochDuration, err := cfgMinVaultEpochDuration.Get(m.sctx)
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get min epoch duration")
	}
	if epochDuration < minEpochDuration {
		return keel.Address{}, ErrVaultWrongEpochDuration
	}

	collateral, err := v.Collateral()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get vault collateral")
	}
	allowedCollateral, err := m.storage.collateral.Get()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get collateral")
	}
	if collateral != allowedCollateral {
		return keel.Address{}, ErrUnknownCollateral
	}

	delegatorAddr, err := v.Delegator()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get vault delegator")
	}
	delegator := m.contracts.Delegator(delegatorAddr)
	initialized, err := delegator.IsInitialized()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to check delegator")
	}
	if !initialized {
		return keel.Address{}, ErrDelegatorNotInitialized
	}
	hook, err := delegator.Hook()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get delegator hook")
	}
	if !hook.IsZero() {
		return keel.Address{}, ErrUnsupportedDelegatorHook
	}

	burner, err := v.Burner()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get vault burner")
	}
	if burner.IsZero() {
		return keel.Address{}, ErrUnsupportedBurner
	}

	slasherAddr, err := v.Slasher()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get vault slasher")
	}
	if !slasherAddr.IsZero() {
		if err := m.checkSlasherAdmission(slasherAddr, epochDuration); err != nil {
			return keel.Address{}, err
		}
	}

	if err := m.checkStakerRewardsAdmission(vault, stakerRewards); err != nil {
		return keel.Address{}, err
	}

	owner, err := v.Owner()
	if err != nil {
		return keel.Address{}, errors.Wrap(err, "failed to get vault owner")
	}
	if env.Caller != owner {
		return keel.Address{}, ErrNotVaultOwner
	}
	return owner, nil
}

func (m *Middleware) checkSlasherAdmission(slasherAddr keel.Address, epochDuration uint64) error {
	slasher := m.contracts.Slasher(slasherAddr)

	initialized, err := slasher.IsInitialized()
	if err != nil {
		return errors.Wrap(err, "failed to check slasher")
	}
	if !initialized {
		return ErrSlasherNotInitialized
	}

	slasherType, err := slasher.Type()
	if err != nil {
		return errors.Wrap(err, "failed to get slasher type")
	}
	allowedType, err := cfgAllowedVetoSlasherType.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get allowed slasher type")
	}
	if slasherType != allowedType {
		return ErrIncompatibleSlasherType
	}

	burnerHook, err := slasher.IsBurnerHook()
	if err != nil {
		return errors.Wrap(err, "failed to check burner hook")
	}
	if burnerHook {
		return ErrBurnerHookNotSupported
	}

	vetoDuration, err := slasher.VetoDuration()
	if err != nil {
		return errors.Wrap(err, "failed to get veto duration")
	}
	minVetoDuration, err := cfgMinVetoDuration.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get min veto duration")
	}
	if vetoDuration < minVetoDuration {
		return ErrVetoDurationTooShort
	}
	minExecutionDelay, err := cfgMinSlashExecutionDelay.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get min slash execution delay")
	}
	// veto window must leave at least minExecutionDelay of the vault epoch
	// for execution
	if vetoDuration+minExecutionDelay > epochDuration {
		return ErrVetoDurationTooLong
	}

	resolver, err := slasher.Resolver(m.Subnetwork())
	if err != nil {
		return errors.Wrap(err, "failed to get resolver")
	}
	vetoResolver, err := m.storage.vetoResolver.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get veto resolver")
	}
	if resolver != vetoResolver {
		return ErrResolverMismatch
	}

	setDelay, err := slasher.ResolverSetEpochsDelay()
	if err != nil {
		return errors.Wrap(err, "failed to get resolver set delay")
	}
	maxSetDelay, err := cfgMaxResolverSetEpochsDelay.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get max resolver set delay")
	}
	if setDelay > maxSetDelay {
		return ErrResolverSetDelayTooLong
	}
	return nil
}

func (m *Middleware) checkStakerRewardsAdmission(vault, stakerRewards keel.Address) error {
	isEntity, err := m.contracts.RewardsFactory().IsEntity(stakerRewards)
	if err != nil {
		return errors.Wrap(err, "failed to check staker rewards entity")
	}
	if !isEntity {
		return ErrNonFactoryStakerRewards
	}

	rewards := m.contracts.StakerRewards(stakerRewards)
	version, err := rewards.Version()
	if err != nil {
		return errors.Wrap(err, "failed to get staker rewards version")
	}
	allowedVersion, err := cfgAllowedStakerRewardsVersion.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get allowed staker rewards version")
	}
	if version != allowedVersion {
		return ErrIncompatibleStakerRewardsVersion
	}

	rewardsVault, err := rewards.Vault()
	if err != nil {
		return errors.Wrap(err, "failed to get staker rewards vault")
	}
	if rewardsVault != vault {
		return ErrInvalidStakerRewardsVault
	}
	return nil
}

// EnableVault re-enables a vault. Pinned owner only.
func (m *Middleware) EnableVault(env Env, vault keel.Address) error {
	logger.Debug("enabling vault", "vault", vault, "caller", env.Caller)

	checkpoint := m.state.NewCheckpoint()
	if err := m.withVaultOwner(env, vault, func() error {
		return m.storage.vaults.Enable(vault)
	}); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// DisableVault disables a vault as of now. Pinned owner only.
func (m *Middleware) DisableVault(env Env, vault keel.Address) error {
	logger.Debug("disabling vault", "vault", vault, "caller", env.Caller)

	checkpoint := m.state.NewCheckpoint()
	if err := m.withVaultOwner(env, vault, func() error {
		return m.storage.vaults.Disable(vault, env.Time)
	}); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// UnregisterVault removes a disabled vault once its grace period has
// elapsed and clears its staker-rewards association. Unlike operators, only
// the pinned owner may remove a vault.
func (m *Middleware) UnregisterVault(env Env, vault keel.Address) error {
	checkpoint := m.state.NewCheckpoint()
	if err := m.unregisterVault(env, vault); err != nil {
		m.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (m *Middleware) unregisterVault(env Env, vault keel.Address) error {
	logger.Debug("unregistering vault", "vault", vault, "caller", env.Caller)

	entry, err := m.storage.vaults.Get(vault)
	if err != nil {
		return err
	}
	if entry == nil {
		return registry.ErrNotListed
	}
	if entry.Pinned != env.Caller {
		return ErrNotVaultOwner
	}

	grace, err := cfgVaultGracePeriod.Get(m.sctx)
	if err != nil {
		return errors.Wrap(err, "failed to get vault grace period")
	}
	if entry.DisabledAt == 0 || env.Time < entry.DisabledAt+grace {
		return ErrVaultGracePeriodNotPassed
	}

	if err := m.storage.vaults.Remove(vault); err != nil {
		return err
	}
	if err := m.storage.vaultRewards.Set(vault, keel.Address{}); err != nil {
		return errors.Wrap(err, "failed to clear vault rewards")
	}

	logger.Info("unregistered vault", "vault", vault)
	return nil
}

// withVaultOwner runs fn after checking the caller against the vault's
// pinned owner, never a live lookup.
func (m *Middleware) withVaultOwner(env Env, vault keel.Address, fn func() error) error {
	entry, err := m.storage.vaults.Get(vault)
	if err != nil {
		return err
	}
	if entry == nil {
		return registry.ErrNotListed
	}
	if entry.Pinned != env.Caller {
		return ErrNotVaultOwner
	}
	return fn()
}
