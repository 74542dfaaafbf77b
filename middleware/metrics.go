// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import "github.com/keelchain/keel/metrics"

var (
	metricOperatorRegisteredCount = metrics.LazyLoadCounter("middleware_operator_registered_count")
	metricVaultRegisteredCount    = metrics.LazyLoadCounter("middleware_vault_registered_count")
	metricSlashRequestCount       = metrics.LazyLoadCounter("middleware_slash_request_count")
	metricSlashExecutedCount      = metrics.LazyLoadCounter("middleware_slash_executed_count")
	metricElectionSize            = metrics.LazyLoadHistogram("middleware_election_size", metrics.BucketSetSize)
)
