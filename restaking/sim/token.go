// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sim

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/keelchain/keel/keel"
)

type allowanceKey struct {
	owner   keel.Address
	spender keel.Address
}

// Token is the in-memory ERC20-shaped ledger double.
type Token struct {
	addr       keel.Address
	balances   map[keel.Address]*big.Int
	allowances map[allowanceKey]*big.Int
}

// CreateToken deploys a fresh token ledger and returns its address.
func (u *Universe) CreateToken() keel.Address {
	token := &Token{
		addr:       u.nextAddress(),
		balances:   make(map[keel.Address]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
	}
	u.tokens[token.addr] = token
	return token.addr
}

// TokenLedger returns the concrete token double for direct inspection and
// mutation in tests.
func (u *Universe) TokenLedger(token keel.Address) *Token {
	return u.tokens[token]
}

// Address returns the token's address.
func (t *Token) Address() keel.Address { return t.addr }

// Mint credits amount to addr out of thin air.
func (t *Token) Mint(to keel.Address, amount *big.Int) {
	t.credit(to, amount)
}

// Balance returns the current balance of addr.
func (t *Token) Balance(addr keel.Address) *big.Int {
	if b, ok := t.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Allowance returns what spender may pull from owner.
func (t *Token) Allowance(owner, spender keel.Address) *big.Int {
	if a, ok := t.allowances[allowanceKey{owner, spender}]; ok {
		return new(big.Int).Set(a)
	}
	return new(big.Int)
}

// ApproveFrom sets an allowance on behalf of owner, the way an external
// party approves the engine before routing rewards through it.
func (t *Token) ApproveFrom(owner, spender keel.Address, amount *big.Int) {
	t.approve(owner, spender, amount)
}

func (t *Token) credit(to keel.Address, amount *big.Int) {
	b, ok := t.balances[to]
	if !ok {
		b = new(big.Int)
		t.balances[to] = b
	}
	b.Add(b, amount)
}

func (t *Token) transfer(from, to keel.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.New("invalid amount")
	}
	b := t.Balance(from)
	if b.Cmp(amount) < 0 {
		return errors.New("insufficient balance")
	}
	t.balances[from] = b.Sub(b, amount)
	t.credit(to, amount)
	return nil
}

func (t *Token) approve(owner, spender keel.Address, amount *big.Int) {
	t.allowances[allowanceKey{owner, spender}] = new(big.Int).Set(amount)
}

func (t *Token) transferFrom(spender, from, to keel.Address, amount *big.Int) error {
	allowance := t.Allowance(from, spender)
	if allowance.Cmp(amount) < 0 {
		return errors.New("insufficient allowance")
	}
	if err := t.transfer(from, to, amount); err != nil {
		return err
	}
	t.allowances[allowanceKey{from, spender}] = allowance.Sub(allowance, amount)
	return nil
}

// tokenHandle acts on the ledger on behalf of the engine.
type tokenHandle struct {
	u    *Universe
	addr keel.Address
}

func (h *tokenHandle) resolve() (*Token, error) {
	if t, ok := h.u.tokens[h.addr]; ok {
		return t, nil
	}
	return nil, errors.Errorf("unknown token %v", h.addr)
}

func (h *tokenHandle) BalanceOf(addr keel.Address) (*big.Int, error) {
	t, err := h.resolve()
	if err != nil {
		return nil, err
	}
	return t.Balance(addr), nil
}

func (h *tokenHandle) Transfer(to keel.Address, amount *big.Int) error {
	t, err := h.resolve()
	if err != nil {
		return err
	}
	return t.transfer(h.u.engine, to, amount)
}

func (h *tokenHandle) TransferFrom(from, to keel.Address, amount *big.Int) error {
	t, err := h.resolve()
	if err != nil {
		return err
	}
	return t.transferFrom(h.u.engine, from, to, amount)
}

func (h *tokenHandle) Approve(spender keel.Address, amount *big.Int) error {
	t, err := h.resolve()
	if err != nil {
		return err
	}
	t.approve(h.u.engine, spender, amount)
	return nil
}
