// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sim

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/restaking"
)

// VaultConfig describes a vault to be deployed into the universe. Zero
// Version means the factory's newest version. A slasher is attached only
// when WithSlasher is set.
type VaultConfig struct {
	EpochDuration uint64
	Collateral    keel.Address
	Owner         keel.Address
	Burner        keel.Address
	Version       uint64

	WithSlasher            bool
	SlasherType            uint64
	VetoDuration           uint64
	Resolver               keel.Address
	ResolverSetEpochsDelay uint64
	BurnerHook             bool
}

// Vault is the in-memory stake custody double.
type Vault struct {
	addr          keel.Address
	epochDuration uint64
	collateral    keel.Address
	owner         keel.Address
	burner        keel.Address
	delegator     keel.Address
	slasher       keel.Address
}

// Address returns the vault's address.
func (v *Vault) Address() keel.Address { return v.addr }

// SetOwner replaces the vault's administrative owner. Registered vaults keep
// authorizing against the owner pinned at registration, which tests exercise
// through this mutator.
func (v *Vault) SetOwner(owner keel.Address) { v.owner = owner }

type stakeKey struct {
	subnetwork restaking.Subnetwork
	operator   keel.Address
}

type checkpoint struct {
	ts    uint64
	value *big.Int
}

// Delegator is the in-memory stake allocation double. Stake is a
// checkpointed timeline per (subnetwork, operator); historical queries
// resolve to the last checkpoint at or before the queried timestamp, the
// way the protocol's checkpointed shares behave.
type Delegator struct {
	u           *Universe
	addr        keel.Address
	initialized bool
	hook        keel.Address
	limits      map[restaking.Subnetwork]*big.Int
	stakes      map[stakeKey][]checkpoint
}

// Address returns the delegator's address.
func (d *Delegator) Address() keel.Address { return d.addr }

// SetInitialized toggles the initialization flag.
func (d *Delegator) SetInitialized(ok bool) { d.initialized = ok }

// SetHook installs a stake-change hook address.
func (d *Delegator) SetHook(hook keel.Address) { d.hook = hook }

// MaxNetworkLimit returns the stake ceiling recorded for subnetwork, nil
// when never raised.
func (d *Delegator) MaxNetworkLimit(subnetwork restaking.Subnetwork) *big.Int {
	limit, ok := d.limits[subnetwork]
	if !ok {
		return nil
	}
	return new(big.Int).Set(limit)
}

// setStake appends a checkpoint at ts.
func (d *Delegator) setStake(subnetwork restaking.Subnetwork, operator keel.Address, ts uint64, value *big.Int) {
	key := stakeKey{subnetwork, operator}
	line := d.stakes[key]
	if n := len(line); n > 0 && line[n-1].ts == ts {
		line[n-1].value = new(big.Int).Set(value)
	} else {
		line = append(line, checkpoint{ts, new(big.Int).Set(value)})
	}
	d.stakes[key] = line
}

// stakeAt resolves the raw checkpointed stake at ts, before the network
// limit cap.
func (d *Delegator) stakeAt(subnetwork restaking.Subnetwork, operator keel.Address, ts uint64) *big.Int {
	line := d.stakes[stakeKey{subnetwork, operator}]
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].ts <= ts {
			return new(big.Int).Set(line[i].value)
		}
	}
	return new(big.Int)
}

// CreateVault deploys a vault with its delegator (and slasher when
// configured) and lists it in the vault factory. Returns the vault address.
func (u *Universe) CreateVault(cfg VaultConfig) keel.Address {
	version := cfg.Version
	if version == 0 {
		version = u.lastVersion
	}

	vault := &Vault{
		addr:          u.nextAddress(),
		epochDuration: cfg.EpochDuration,
		collateral:    cfg.Collateral,
		owner:         cfg.Owner,
		burner:        cfg.Burner,
	}

	delegator := &Delegator{
		u:           u,
		addr:        u.nextAddress(),
		initialized: true,
		limits:      make(map[restaking.Subnetwork]*big.Int),
		stakes:      make(map[stakeKey][]checkpoint),
	}
	vault.delegator = delegator.addr
	u.delegators[delegator.addr] = delegator

	if cfg.WithSlasher {
		slasher := &Slasher{
			u:                      u,
			addr:                   u.nextAddress(),
			vault:                  vault.addr,
			initialized:            true,
			typ:                    cfg.SlasherType,
			vetoDuration:           cfg.VetoDuration,
			resolver:               cfg.Resolver,
			resolverSetEpochsDelay: cfg.ResolverSetEpochsDelay,
			burnerHook:             cfg.BurnerHook,
		}
		vault.slasher = slasher.addr
		u.slashers[slasher.addr] = slasher
	}

	u.vaults[vault.addr] = vault
	u.vaultVersions[vault.addr] = version
	return vault.addr
}

// VaultState returns the concrete vault double for direct inspection and
// mutation in tests.
func (u *Universe) VaultState(vault keel.Address) *Vault {
	return u.vaults[vault]
}

// DelegatorOf returns the concrete delegator double of a vault.
func (u *Universe) DelegatorOf(vault keel.Address) *Delegator {
	v, ok := u.vaults[vault]
	if !ok {
		return nil
	}
	return u.delegators[v.delegator]
}

// SlasherOf returns the concrete slasher double of a vault, nil for a
// slashless vault.
func (u *Universe) SlasherOf(vault keel.Address) *Slasher {
	v, ok := u.vaults[vault]
	if !ok || v.slasher.IsZero() {
		return nil
	}
	return u.slashers[v.slasher]
}

// Deposit adds amount to the stake allocated to operator on subnetwork in
// the vault's delegator, checkpointed at the current clock.
func (u *Universe) Deposit(vault keel.Address, subnetwork restaking.Subnetwork, operator keel.Address, amount *big.Int) {
	d := u.DelegatorOf(vault)
	if d == nil {
		return
	}
	cur := d.stakeAt(subnetwork, operator, u.now)
	d.setStake(subnetwork, operator, u.now, cur.Add(cur, amount))
}

// vaultHandle resolves a vault per call so that lookups of unknown
// addresses fail instead of panicking.
type vaultHandle struct {
	u    *Universe
	addr keel.Address
}

func (h *vaultHandle) resolve() (*Vault, error) {
	if v, ok := h.u.vaults[h.addr]; ok {
		return v, nil
	}
	return nil, errors.Errorf("unknown vault %v", h.addr)
}

func (h *vaultHandle) EpochDuration() (uint64, error) {
	v, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return v.epochDuration, nil
}

func (h *vaultHandle) Collateral() (keel.Address, error) {
	v, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return v.collateral, nil
}

func (h *vaultHandle) Delegator() (keel.Address, error) {
	v, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return v.delegator, nil
}

func (h *vaultHandle) Slasher() (keel.Address, error) {
	v, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return v.slasher, nil
}

func (h *vaultHandle) Burner() (keel.Address, error) {
	v, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return v.burner, nil
}

func (h *vaultHandle) Owner() (keel.Address, error) {
	v, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return v.owner, nil
}

type delegatorHandle struct {
	u    *Universe
	addr keel.Address
}

func (h *delegatorHandle) resolve() (*Delegator, error) {
	if d, ok := h.u.delegators[h.addr]; ok {
		return d, nil
	}
	return nil, errors.Errorf("unknown delegator %v", h.addr)
}

func (h *delegatorHandle) IsInitialized() (bool, error) {
	d, err := h.resolve()
	if err != nil {
		return false, err
	}
	return d.initialized, nil
}

func (h *delegatorHandle) Hook() (keel.Address, error) {
	d, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return d.hook, nil
}

// SetMaxNetworkLimit raises the stake ceiling for the caller network's
// subnetwork. The acting network is the engine the universe was built for.
func (h *delegatorHandle) SetMaxNetworkLimit(identifier uint64, amount *big.Int) error {
	d, err := h.resolve()
	if err != nil {
		return err
	}
	subnetwork := restaking.NewSubnetwork(h.u.engine, identifier)
	d.limits[subnetwork] = new(big.Int).Set(amount)
	return nil
}

// StakeAt answers the historical stake query, capped by the subnetwork's
// recorded limit: until the network raises its ceiling the allocated stake
// is zero.
func (h *delegatorHandle) StakeAt(subnetwork restaking.Subnetwork, operator keel.Address, ts uint64, _ []byte) (*big.Int, error) {
	d, err := h.resolve()
	if err != nil {
		return nil, err
	}
	limit, ok := d.limits[subnetwork]
	if !ok {
		return new(big.Int), nil
	}
	stake := d.stakeAt(subnetwork, operator, ts)
	if stake.Cmp(limit) > 0 {
		return new(big.Int).Set(limit), nil
	}
	return stake, nil
}
