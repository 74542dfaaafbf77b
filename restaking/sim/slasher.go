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

// SlashRecord is one pending or settled slash request held by a slasher.
type SlashRecord struct {
	Subnetwork   restaking.Subnetwork
	Operator     keel.Address
	Amount       *big.Int
	CaptureTs    uint64
	VetoDeadline uint64
	Completed    bool
	Vetoed       bool
}

// Slasher is the in-memory veto-slasher double. It owns the request
// lifecycle: a request opens a veto window, the resolver may veto inside it,
// execution is possible between the veto deadline and the end of the capture
// epoch, and each request settles at most once.
type Slasher struct {
	u                      *Universe
	addr                   keel.Address
	vault                  keel.Address
	initialized            bool
	typ                    uint64
	vetoDuration           uint64
	resolver               keel.Address
	resolverSetEpochsDelay uint64
	burnerHook             bool
	requests               []*SlashRecord
}

// Address returns the slasher's address.
func (s *Slasher) Address() keel.Address { return s.addr }

// SetInitialized toggles the initialization flag.
func (s *Slasher) SetInitialized(ok bool) { s.initialized = ok }

// SetBurnerHook toggles the burner-hook flag.
func (s *Slasher) SetBurnerHook(ok bool) { s.burnerHook = ok }

// SetResolver replaces the resolver identity.
func (s *Slasher) SetResolver(resolver keel.Address) { s.resolver = resolver }

// Request returns the record at index, nil when out of range.
func (s *Slasher) Request(index uint64) *SlashRecord {
	if index >= uint64(len(s.requests)) {
		return nil
	}
	return s.requests[index]
}

// Requests returns the number of requests ever opened.
func (s *Slasher) Requests() uint64 {
	return uint64(len(s.requests))
}

func (s *Slasher) epochDuration() uint64 {
	return s.u.vaults[s.vault].epochDuration
}

func (s *Slasher) delegator() *Delegator {
	return s.u.delegators[s.u.vaults[s.vault].delegator]
}

// requestSlash opens a request. The capture timestamp must be in the past
// and still inside the slashable window once the veto duration is spent.
func (s *Slasher) requestSlash(subnetwork restaking.Subnetwork, operator keel.Address, amount *big.Int, captureTs uint64, now uint64) (uint64, error) {
	if amount == nil || amount.Sign() <= 0 {
		return 0, restaking.ErrInsufficientSlash
	}
	if captureTs >= now {
		return 0, restaking.ErrInvalidCaptureTimestamp
	}
	if captureTs+s.epochDuration() < now+s.vetoDuration {
		return 0, restaking.ErrInvalidCaptureTimestamp
	}
	stake := s.delegator().stakeAt(subnetwork, operator, captureTs)
	if amount.Cmp(stake) > 0 {
		return 0, restaking.ErrInsufficientSlash
	}

	s.requests = append(s.requests, &SlashRecord{
		Subnetwork:   subnetwork,
		Operator:     operator,
		Amount:       new(big.Int).Set(amount),
		CaptureTs:    captureTs,
		VetoDeadline: now + s.vetoDuration,
	})
	return uint64(len(s.requests) - 1), nil
}

// executeSlash settles a request after its veto window, reducing the
// delegator's stake timeline at the current clock.
func (s *Slasher) executeSlash(index uint64, now uint64) (*big.Int, error) {
	if index >= uint64(len(s.requests)) {
		return nil, errors.Errorf("no slash request at index %d", index)
	}
	req := s.requests[index]
	if now < req.VetoDeadline {
		return nil, restaking.ErrVetoPeriodNotEnded
	}
	if now >= req.CaptureTs+s.epochDuration() {
		return nil, restaking.ErrSlashPeriodEnded
	}
	if req.Completed {
		return nil, restaking.ErrSlashRequestCompleted
	}
	req.Completed = true

	d := s.delegator()
	slashed := new(big.Int).Set(req.Amount)
	cur := d.stakeAt(req.Subnetwork, req.Operator, now)
	if slashed.Cmp(cur) > 0 {
		slashed.Set(cur)
	}
	d.setStake(req.Subnetwork, req.Operator, now, cur.Sub(cur, slashed))
	return slashed, nil
}

// vetoSlash cancels a request inside the veto window. Only the resolver may
// veto.
func (s *Slasher) vetoSlash(caller keel.Address, index uint64, now uint64) error {
	if index >= uint64(len(s.requests)) {
		return errors.Errorf("no slash request at index %d", index)
	}
	if caller != s.resolver {
		return restaking.ErrNotResolver
	}
	req := s.requests[index]
	if now >= req.VetoDeadline {
		return restaking.ErrVetoPeriodEnded
	}
	if req.Completed {
		return restaking.ErrSlashRequestCompleted
	}
	req.Completed = true
	req.Vetoed = true
	return nil
}

// VetoAs lets tests veto as an arbitrary caller, the way the resolver acts
// on the contract directly rather than through the engine.
func (s *Slasher) VetoAs(caller keel.Address, index uint64) error {
	return s.vetoSlash(caller, index, s.u.now)
}

type slasherHandle struct {
	u    *Universe
	addr keel.Address
}

func (h *slasherHandle) resolve() (*Slasher, error) {
	if s, ok := h.u.slashers[h.addr]; ok {
		return s, nil
	}
	return nil, errors.Errorf("unknown slasher %v", h.addr)
}

func (h *slasherHandle) IsInitialized() (bool, error) {
	s, err := h.resolve()
	if err != nil {
		return false, err
	}
	return s.initialized, nil
}

func (h *slasherHandle) Type() (uint64, error) {
	s, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return s.typ, nil
}

func (h *slasherHandle) IsBurnerHook() (bool, error) {
	s, err := h.resolve()
	if err != nil {
		return false, err
	}
	return s.burnerHook, nil
}

func (h *slasherHandle) VetoDuration() (uint64, error) {
	s, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return s.vetoDuration, nil
}

func (h *slasherHandle) Resolver(restaking.Subnetwork) (keel.Address, error) {
	s, err := h.resolve()
	if err != nil {
		return keel.Address{}, err
	}
	return s.resolver, nil
}

func (h *slasherHandle) ResolverSetEpochsDelay() (uint64, error) {
	s, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return s.resolverSetEpochsDelay, nil
}

func (h *slasherHandle) RequestSlash(subnetwork restaking.Subnetwork, operator keel.Address, amount *big.Int, captureTs uint64, _ []byte) (uint64, error) {
	s, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return s.requestSlash(subnetwork, operator, amount, captureTs, h.u.now)
}

func (h *slasherHandle) ExecuteSlash(index uint64, _ []byte) (*big.Int, error) {
	s, err := h.resolve()
	if err != nil {
		return nil, err
	}
	return s.executeSlash(index, h.u.now)
}

func (h *slasherHandle) VetoSlash(index uint64, _ []byte) error {
	s, err := h.resolve()
	if err != nil {
		return err
	}
	return s.vetoSlash(h.u.engine, index, h.u.now)
}
