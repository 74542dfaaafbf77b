// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sim provides deterministic in-memory doubles of the external
// restaking contracts. They conform to the restaking interfaces closely
// enough to drive the engine's full behavior in tests; they are not
// production implementations.
package sim

import (
	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/restaking"
)

// deployer is the synthetic creator all simulated contract addresses derive
// from.
var deployer = keel.BytesToAddress([]byte("sim-deployer"))

type optInKey struct {
	who     keel.Address
	network keel.Address
}

// Universe holds the complete simulated protocol: entity registries, vaults
// with their delegators and slashers, rewards contracts and token ledgers,
// plus the ambient clock the deadline machinery reads. The engine address
// given at construction is the acting party of every handle resolved through
// the Contracts interface.
type Universe struct {
	engine keel.Address
	now    uint64
	nonce  uint64

	operatorEntities map[keel.Address]bool
	optIns           map[optInKey]bool
	networks         map[keel.Address]bool
	middlewares      map[keel.Address]keel.Address

	vaultVersions  map[keel.Address]uint64
	lastVersion    uint64
	rewardEntities map[keel.Address]bool

	vaults          map[keel.Address]*Vault
	delegators      map[keel.Address]*Delegator
	slashers        map[keel.Address]*Slasher
	stakerRewards   map[keel.Address]*StakerRewards
	operatorRewards map[keel.Address]*OperatorRewards
	tokens          map[keel.Address]*Token
}

// New creates an empty universe acting on behalf of engine.
func New(engine keel.Address) *Universe {
	return &Universe{
		engine:           engine,
		lastVersion:      1,
		operatorEntities: make(map[keel.Address]bool),
		optIns:           make(map[optInKey]bool),
		networks:         make(map[keel.Address]bool),
		middlewares:      make(map[keel.Address]keel.Address),
		vaultVersions:    make(map[keel.Address]uint64),
		rewardEntities:   make(map[keel.Address]bool),
		vaults:           make(map[keel.Address]*Vault),
		delegators:       make(map[keel.Address]*Delegator),
		slashers:         make(map[keel.Address]*Slasher),
		stakerRewards:    make(map[keel.Address]*StakerRewards),
		operatorRewards:  make(map[keel.Address]*OperatorRewards),
		tokens:           make(map[keel.Address]*Token),
	}
}

// Engine returns the acting engine address.
func (u *Universe) Engine() keel.Address {
	return u.engine
}

// Now returns the ambient clock.
func (u *Universe) Now() uint64 {
	return u.now
}

// SetNow moves the ambient clock. Tests keep it in sync with the Env.Time
// they pass to the engine.
func (u *Universe) SetNow(ts uint64) {
	u.now = ts
}

func (u *Universe) nextAddress() keel.Address {
	u.nonce++
	return keel.CreateContractAddress(deployer, u.nonce)
}

// RegisterOperatorEntity lists addr in the protocol operator registry.
func (u *Universe) RegisterOperatorEntity(addr keel.Address) {
	u.operatorEntities[addr] = true
}

// OptIn records who as opted in to network.
func (u *Universe) OptIn(who, network keel.Address) {
	u.optIns[optInKey{who, network}] = true
}

// OptOut clears an opt-in.
func (u *Universe) OptOut(who, network keel.Address) {
	delete(u.optIns, optInKey{who, network})
}

// NetworkRegistered reports whether network has introduced itself to the
// protocol registry.
func (u *Universe) NetworkRegistered(network keel.Address) bool {
	return u.networks[network]
}

// MiddlewareOf returns the middleware recorded for network, zero when unset.
func (u *Universe) MiddlewareOf(network keel.Address) keel.Address {
	return u.middlewares[network]
}

// SetLastVersion moves the vault factory's newest implementation version.
func (u *Universe) SetLastVersion(v uint64) {
	u.lastVersion = v
}

// Contracts interface implementation.

func (u *Universe) OperatorRegistry() restaking.OperatorRegistry { return &operatorRegistry{u} }
func (u *Universe) OptInService() restaking.OptInService         { return &optInService{u} }
func (u *Universe) NetworkRegistry() restaking.NetworkRegistry   { return &networkRegistry{u} }
func (u *Universe) MiddlewareService() restaking.MiddlewareService {
	return &middlewareService{u}
}
func (u *Universe) VaultFactory() restaking.VaultFactory     { return &vaultFactory{u} }
func (u *Universe) RewardsFactory() restaking.RewardsFactory { return &rewardsFactory{u} }

func (u *Universe) Vault(addr keel.Address) restaking.Vault         { return &vaultHandle{u, addr} }
func (u *Universe) Delegator(addr keel.Address) restaking.Delegator { return &delegatorHandle{u, addr} }
func (u *Universe) Slasher(addr keel.Address) restaking.Slasher     { return &slasherHandle{u, addr} }
func (u *Universe) StakerRewards(addr keel.Address) restaking.StakerRewards {
	return &stakerRewardsHandle{u, addr}
}
func (u *Universe) OperatorRewards(addr keel.Address) restaking.OperatorRewards {
	return &operatorRewardsHandle{u, addr}
}
func (u *Universe) Token(addr keel.Address) restaking.Token { return &tokenHandle{u, addr} }

type operatorRegistry struct{ u *Universe }

func (r *operatorRegistry) IsEntity(addr keel.Address) (bool, error) {
	return r.u.operatorEntities[addr], nil
}

type optInService struct{ u *Universe }

func (s *optInService) IsOptedIn(who, network keel.Address) (bool, error) {
	return s.u.optIns[optInKey{who, network}], nil
}

type networkRegistry struct{ u *Universe }

func (r *networkRegistry) RegisterNetwork(network keel.Address) error {
	if r.u.networks[network] {
		return errors.New("network already registered")
	}
	r.u.networks[network] = true
	return nil
}

type middlewareService struct{ u *Universe }

func (s *middlewareService) SetMiddleware(network, middleware keel.Address) error {
	if !s.u.networks[network] {
		return errors.New("network not registered")
	}
	s.u.middlewares[network] = middleware
	return nil
}

type vaultFactory struct{ u *Universe }

func (f *vaultFactory) IsEntity(addr keel.Address) (bool, error) {
	_, ok := f.u.vaultVersions[addr]
	return ok, nil
}

func (f *vaultFactory) Version(addr keel.Address) (uint64, error) {
	v, ok := f.u.vaultVersions[addr]
	if !ok {
		return 0, errors.Errorf("vault %v not deployed by factory", addr)
	}
	return v, nil
}

func (f *vaultFactory) LastVersion() (uint64, error) {
	return f.u.lastVersion, nil
}

type rewardsFactory struct{ u *Universe }

func (f *rewardsFactory) IsEntity(addr keel.Address) (bool, error) {
	return f.u.rewardEntities[addr], nil
}
