// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/test/datagen"
)

func TestMakeElectionAt(t *testing.T) {
	tb := newTestbed(t, true)
	vaultOwner := datagen.RandAddress()
	vault, _ := tb.addVault(t, vaultOwner)

	operators := make([]keel.Address, 5)
	for i := range operators {
		operators[i] = tb.addOperator(t)
	}
	for i, amount := range []int64{1000, 2000, 1000, 5000, 1000} {
		tb.deposit(vault, operators[i], amount)
	}
	ts := tb.now
	tb.advance(100)
	env := tb.env(tb.owner)

	_, err := tb.engine.MakeElectionAt(env, tb.now, 3)
	assert.ErrorIs(t, err, ErrIncorrectTimestamp)
	_, err = tb.engine.MakeElectionAt(env, ts, 0)
	assert.ErrorIs(t, err, ErrZeroMaxValidators)

	// more room than operators: everyone, in registration order
	elected, err := tb.engine.MakeElectionAt(env, ts, 10)
	require.NoError(t, err)
	assert.Equal(t, operators, elected)

	elected, err = tb.engine.MakeElectionAt(env, ts, 5)
	require.NoError(t, err)
	assert.Equal(t, operators, elected)

	// the top of the table is unambiguous
	elected, err = tb.engine.MakeElectionAt(env, ts, 1)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{operators[3]}, elected)

	elected, err = tb.engine.MakeElectionAt(env, ts, 2)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{operators[3], operators[1]}, elected)

	// the last two seats are contested by three equal stakes; the pick is
	// free but must stay inside the tie group
	elected, err = tb.engine.MakeElectionAt(env, ts, 4)
	require.NoError(t, err)
	require.Len(t, elected, 4)
	assert.Equal(t, operators[3], elected[0])
	assert.Equal(t, operators[1], elected[1])
	assert.NotEqual(t, elected[2], elected[3])
	tieGroup := []keel.Address{operators[0], operators[2], operators[4]}
	assert.Contains(t, tieGroup, elected[2])
	assert.Contains(t, tieGroup, elected[3])
}

func TestMakeElectionAtExcludesInactive(t *testing.T) {
	tb := newTestbed(t, true)
	vaultOwner := datagen.RandAddress()
	vault, _ := tb.addVault(t, vaultOwner)
	alice := tb.addOperator(t)
	bob := tb.addOperator(t)
	tb.deposit(vault, alice, 100)
	tb.deposit(vault, bob, 200)

	tb.advance(10)
	require.NoError(t, tb.engine.DisableOperator(tb.env(bob)))
	tb.advance(10)

	elected, err := tb.engine.MakeElectionAt(tb.env(tb.owner), tb.now-1, 10)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{alice}, elected)
}

func TestMakeElectionAtZeroStake(t *testing.T) {
	tb := newTestbed(t, true)
	operator := tb.addOperator(t)
	tb.advance(10)

	// an active operator with nothing at stake is still electable
	elected, err := tb.engine.MakeElectionAt(tb.env(tb.owner), tb.now-1, 10)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{operator}, elected)
}

func TestMakeElectionAtEmpty(t *testing.T) {
	tb := newTestbed(t, true)
	tb.advance(10)

	elected, err := tb.engine.MakeElectionAt(tb.env(tb.owner), tb.now-1, 5)
	require.NoError(t, err)
	assert.Empty(t, elected)
}

func TestElectionCache(t *testing.T) {
	tb := newTestbed(t, true)
	vaultOwner := datagen.RandAddress()
	vault, _ := tb.addVault(t, vaultOwner)
	alice := tb.addOperator(t)
	bob := tb.addOperator(t)
	tb.deposit(vault, alice, 100)
	tb.deposit(vault, bob, 200)
	ts := tb.now

	cached := NewElectionCache(tb.engine)

	// a failed query is not memoized
	_, err := cached.MakeElectionAt(tb.env(tb.owner), ts, 5)
	assert.ErrorIs(t, err, ErrIncorrectTimestamp)

	tb.advance(100)
	elected, err := cached.MakeElectionAt(tb.env(tb.owner), ts, 5)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{alice, bob}, elected)

	// removing bob rewrites history; the memo still answers the old query
	require.NoError(t, tb.engine.DisableOperator(tb.env(bob)))
	tb.advance(cfgOperatorGracePeriod.Default())
	require.NoError(t, tb.engine.UnregisterOperator(tb.env(tb.owner), bob))

	direct, err := tb.engine.MakeElectionAt(tb.env(tb.owner), ts, 5)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{alice}, direct)

	elected, err = cached.MakeElectionAt(tb.env(tb.owner), ts, 5)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{alice, bob}, elected)

	// a different validator ceiling is a different question, answered
	// against the rewritten registry
	elected, err = cached.MakeElectionAt(tb.env(tb.owner), ts, 1)
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{alice}, elected)
}
