// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/keelchain/keel/metrics"

var (
	metricStorageWriteCount  = metrics.LazyLoadCounter("state_storage_write_count")
	metricStorageCommitCount = metrics.LazyLoadCounter("state_storage_commit_count")
)
