// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"math/big"
	"sort"

	"github.com/keelchain/keel/keel"
)

// MakeElectionAt selects the validator set for ts. When no more operators
// are active than maxValidators, every active operator is returned in
// registration order, unsorted. Otherwise exactly maxValidators operators
// are returned by descending stake.
//
// Operators tied in stake at the set boundary are picked by no particular
// rule: two elections over the same state may pick different members of the
// tie group, and callers must not rely on the order or identity of tied
// picks.
func (m *Middleware) MakeElectionAt(env Env, ts uint64, maxValidators uint64) ([]keel.Address, error) {
	if ts >= env.Time {
		return nil, ErrIncorrectTimestamp
	}
	if maxValidators == 0 {
		return nil, ErrZeroMaxValidators
	}

	operators, stakes, err := m.ActiveOperatorsStakeAt(env, ts)
	if err != nil {
		return nil, err
	}

	if uint64(len(operators)) <= maxValidators {
		metricElectionSize().Observe(int64(len(operators)))
		return operators, nil
	}

	type candidate struct {
		operator keel.Address
		stake    *big.Int
	}
	candidates := make([]candidate, len(operators))
	for i, operator := range operators {
		candidates[i] = candidate{operator, stakes[i]}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].stake.Cmp(candidates[j].stake) > 0
	})

	elected := make([]keel.Address, maxValidators)
	for i := range elected {
		elected[i] = candidates[i].operator
	}

	metricElectionSize().Observe(int64(len(elected)))
	logger.Debug("made election", "ts", ts, "maxValidators", maxValidators, "elected", len(elected))
	return elected, nil
}
