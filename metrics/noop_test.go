// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	// until a real backend is installed, meters swallow everything and no
	// scrape endpoint is served
	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	count := Counter("noop_count")
	count.Add(1)
	Counter("noop_count").Add(1) // lookup form, same meter

	Gauge("noop_gauge").Set(42)
	Gauge("noop_gauge").Add(-1)

	hist := Histogram("noop_hist", BucketSetSize)
	histVec := HistogramVec("noop_hist_vec", []string{"label"}, nil)
	countVec := CounterVec("noop_count_vec", []string{"label"})
	gaugeVec := GaugeVec("noop_gauge_vec", []string{"label"})
	for i := 0; i < 10; i++ {
		hist.Observe(int64(i))
		histVec.ObserveWithLabels(int64(i), map[string]string{"mismatched": "labels do not break"})
		countVec.AddWithLabel(int64(i), map[string]string{"mismatched": "labels do not break"})
		gaugeVec.SetWithLabel(int64(i), map[string]string{"mismatched": "labels do not break"})
	}

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
