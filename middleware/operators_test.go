// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/middleware/registry"
	"github.com/keelchain/keel/test/datagen"
)

func TestRegisterOperator(t *testing.T) {
	tb := newTestbed(t, true)
	operator := datagen.RandAddress()

	assert.ErrorIs(t, tb.engine.RegisterOperator(tb.env(operator)), ErrOperatorDoesNotExist)

	tb.universe.RegisterOperatorEntity(operator)
	assert.ErrorIs(t, tb.engine.RegisterOperator(tb.env(operator)), ErrOperatorDoesNotOptIn)

	registered, err := tb.engine.IsOperatorRegistered(operator)
	require.NoError(t, err)
	assert.False(t, registered)

	tb.universe.OptIn(operator, engineAddr)
	require.NoError(t, tb.engine.RegisterOperator(tb.env(operator)))

	registered, err = tb.engine.IsOperatorRegistered(operator)
	require.NoError(t, err)
	assert.True(t, registered)

	entry, err := tb.engine.storage.operators.Get(operator)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, tb.now, entry.EnabledAt)
	assert.True(t, entry.IsEnabled())

	assert.ErrorIs(t, tb.engine.RegisterOperator(tb.env(operator)), registry.ErrAlreadyAdded)

	operators, err := tb.engine.Operators()
	require.NoError(t, err)
	assert.Equal(t, []keel.Address{operator}, operators)
}

func TestOperatorsRegistrationOrder(t *testing.T) {
	tb := newTestbed(t, true)

	want := make([]keel.Address, 4)
	for i := range want {
		want[i] = tb.addOperator(t)
		tb.advance(10)
	}

	operators, err := tb.engine.Operators()
	require.NoError(t, err)
	assert.Equal(t, want, operators)
}

func TestOperatorEnableDisable(t *testing.T) {
	tb := newTestbed(t, true)
	operator := tb.addOperator(t)
	registeredAt := tb.now

	assert.ErrorIs(t, tb.engine.EnableOperator(tb.env(operator)), registry.ErrAlreadyEnabled)
	assert.ErrorIs(t, tb.engine.DisableOperator(tb.env(datagen.RandAddress())), registry.ErrNotListed)

	tb.advance(500)
	require.NoError(t, tb.engine.DisableOperator(tb.env(operator)))

	entry, err := tb.engine.storage.operators.Get(operator)
	require.NoError(t, err)
	assert.Equal(t, registeredAt, entry.EnabledAt)
	assert.Equal(t, tb.now, entry.DisabledAt)
	assert.False(t, entry.IsEnabled())

	assert.ErrorIs(t, tb.engine.DisableOperator(tb.env(operator)), registry.ErrNotEnabled)

	// re-enabling keeps the original window opening
	require.NoError(t, tb.engine.EnableOperator(tb.env(operator)))
	entry, err = tb.engine.storage.operators.Get(operator)
	require.NoError(t, err)
	assert.True(t, entry.IsEnabled())
	assert.Equal(t, registeredAt, entry.EnabledAt)
}

func TestUnregisterOperator(t *testing.T) {
	tb := newTestbed(t, true)
	operator := tb.addOperator(t)
	stranger := datagen.RandAddress()
	grace := cfgOperatorGracePeriod.Default()

	assert.ErrorIs(t, tb.engine.UnregisterOperator(tb.env(stranger), datagen.RandAddress()), registry.ErrNotListed)
	// an enabled operator cannot be removed at all
	assert.ErrorIs(t, tb.engine.UnregisterOperator(tb.env(stranger), operator), ErrOperatorGracePeriodNotPassed)

	tb.advance(100)
	require.NoError(t, tb.engine.DisableOperator(tb.env(operator)))
	disabledAt := tb.now

	tb.advance(grace - 1)
	assert.ErrorIs(t, tb.engine.UnregisterOperator(tb.env(stranger), operator), ErrOperatorGracePeriodNotPassed)

	// removal is permissionless once the grace period has elapsed
	tb.advance(1)
	require.Equal(t, disabledAt+grace, tb.now)
	require.NoError(t, tb.engine.UnregisterOperator(tb.env(stranger), operator))

	registered, err := tb.engine.IsOperatorRegistered(operator)
	require.NoError(t, err)
	assert.False(t, registered)

	operators, err := tb.engine.Operators()
	require.NoError(t, err)
	assert.Empty(t, operators)
}

func TestRegisterOperatorKey(t *testing.T) {
	tb := newTestbed(t, true)
	operator := datagen.RandAddress()
	key := datagen.RandBytes32()

	assert.ErrorIs(t, tb.engine.RegisterOperatorKey(tb.env(operator), key), ErrOperatorDoesNotExist)

	// the key record only needs the protocol entity, not engine registration
	tb.universe.RegisterOperatorEntity(operator)
	require.NoError(t, tb.engine.RegisterOperatorKey(tb.env(operator), key))

	got, err := tb.engine.OperatorKey(operator)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	rotated := datagen.RandBytes32()
	require.NoError(t, tb.engine.RegisterOperatorKey(tb.env(operator), rotated))
	got, err = tb.engine.OperatorKey(operator)
	require.NoError(t, err)
	assert.Equal(t, rotated, got)
}

func TestOperatorKeySurvivesUnregistration(t *testing.T) {
	tb := newTestbed(t, true)
	operator := tb.addOperator(t)
	key := datagen.RandBytes32()
	require.NoError(t, tb.engine.RegisterOperatorKey(tb.env(operator), key))

	require.NoError(t, tb.engine.DisableOperator(tb.env(operator)))
	tb.advance(cfgOperatorGracePeriod.Default())
	require.NoError(t, tb.engine.UnregisterOperator(tb.env(operator), operator))

	got, err := tb.engine.OperatorKey(operator)
	require.NoError(t, err)
	assert.Equal(t, key, got)
}
