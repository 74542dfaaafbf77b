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

// StakerDistribution records one staker-rewards payout routed through the
// engine.
type StakerDistribution struct {
	Network   keel.Address
	Token     keel.Address
	Amount    *big.Int
	CaptureTs uint64
}

// StakerRewards is the in-memory staker-rewards double tied to one vault.
// It pulls the distributed amount from the network and records it; the
// admin-fee and timestamp rules are enforced here, on the contract side.
type StakerRewards struct {
	u             *Universe
	addr          keel.Address
	vault         keel.Address
	version       uint64
	adminFee      uint64
	Distributions []StakerDistribution
}

// CreateStakerRewards deploys a staker-rewards contract for vault and lists
// it in the rewards factory.
func (u *Universe) CreateStakerRewards(vault keel.Address) keel.Address {
	r := &StakerRewards{
		u:       u,
		addr:    u.nextAddress(),
		vault:   vault,
		version: 1,
	}
	u.stakerRewards[r.addr] = r
	u.rewardEntities[r.addr] = true
	return r.addr
}

// StakerRewardsState returns the concrete staker-rewards double.
func (u *Universe) StakerRewardsState(addr keel.Address) *StakerRewards {
	return u.stakerRewards[addr]
}

// Address returns the contract's address.
func (r *StakerRewards) Address() keel.Address { return r.addr }

// SetVersion overrides the implementation version.
func (r *StakerRewards) SetVersion(v uint64) { r.version = v }

// SetVault repoints the contract at another vault.
func (r *StakerRewards) SetVault(vault keel.Address) { r.vault = vault }

// SetAdminFee sets the fee the contract takes, checked against the cap each
// distribution carries.
func (r *StakerRewards) SetAdminFee(fee uint64) { r.adminFee = fee }

func (r *StakerRewards) distribute(network, token keel.Address, amount *big.Int, captureTs uint64, maxAdminFee uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.New("insufficient reward")
	}
	if captureTs >= r.u.now {
		return restaking.ErrInvalidCaptureTimestamp
	}
	if r.adminFee > maxAdminFee {
		return restaking.ErrHighAdminFee
	}

	ledger, ok := r.u.tokens[token]
	if !ok {
		return errors.Errorf("unknown token %v", token)
	}
	if err := ledger.transferFrom(r.addr, network, r.addr, amount); err != nil {
		return err
	}

	r.Distributions = append(r.Distributions, StakerDistribution{
		Network:   network,
		Token:     token,
		Amount:    new(big.Int).Set(amount),
		CaptureTs: captureTs,
	})
	return nil
}

type stakerRewardsHandle struct {
	u    *Universe
	addr keel.Address
}

func (h *stakerRewardsHandle) resolve() (*StakerRewards, error) {
	if r, ok := h.u.stakerRewards[h.addr]; ok {
		return r, nil
	}
	return nil, errors.Errorf("unknown staker rewards %v", h.addr)
}

func (h *stakerRewardsHandle) Version() (uint64, error) {
	r, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return r.version, nil
}

func (h *stakerRewardsHandle) Vault() (keel.Address, error) {
	r, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return r.vault, nil
}

func (h *stakerRewardsHandle) DistributeRewards(network, token keel.Address, amount *big.Int, captureTs uint64, maxAdminFee uint64) error {
	r, err := h.resolve()
	if err != nil {
		return err
	}
	return r.distribute(network, token, amount, captureTs, maxAdminFee)
}

// OperatorDistribution records one operator-rewards payout routed through
// the engine.
type OperatorDistribution struct {
	Network keel.Address
	Token   keel.Address
	Amount  *big.Int
	Root    keel.Bytes32
}

// OperatorRewards is the in-memory operator-rewards double. Payouts are
// claimed elsewhere against the recorded merkle root; the double only keeps
// the ledgered history.
type OperatorRewards struct {
	u             *Universe
	addr          keel.Address
	Distributions []OperatorDistribution
}

// CreateOperatorRewards deploys an operator-rewards contract.
func (u *Universe) CreateOperatorRewards() keel.Address {
	r := &OperatorRewards{
		u:    u,
		addr: u.nextAddress(),
	}
	u.operatorRewards[r.addr] = r
	return r.addr
}

// OperatorRewardsState returns the concrete operator-rewards double.
func (u *Universe) OperatorRewardsState(addr keel.Address) *OperatorRewards {
	return u.operatorRewards[addr]
}

// Address returns the contract's address.
func (r *OperatorRewards) Address() keel.Address { return r.addr }

func (r *OperatorRewards) distribute(network, token keel.Address, amount *big.Int, root keel.Bytes32) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.New("insufficient reward")
	}
	ledger, ok := r.u.tokens[token]
	if !ok {
		return errors.Errorf("unknown token %v", token)
	}
	if err := ledger.transferFrom(r.addr, network, r.addr, amount); err != nil {
		return err
	}

	r.Distributions = append(r.Distributions, OperatorDistribution{
		Network: network,
		Token:   token,
		Amount:  new(big.Int).Set(amount),
		Root:    root,
	})
	return nil
}

type operatorRewardsHandle struct {
	u    *Universe
	addr keel.Address
}

func (h *operatorRewardsHandle) resolve() (*OperatorRewards, error) {
	if r, ok := h.u.operatorRewards[h.addr]; ok {
		return r, nil
	}
	return nil, errors.Errorf("unknown operator rewards %v", h.addr)
}

func (h *operatorRewardsHandle) DistributeRewards(network, token keel.Address, amount *big.Int, root keel.Bytes32) error {
	r, err := h.resolve()
	if err != nil {
		return err
	}
	return r.distribute(network, token, amount, root)
}
