package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// counterValue はGatherの結果から指定ラベルのカウンタ値を取り出す。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() == name {
			var total float64
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total
		}
	}

	t.Fatalf("metric %s not found", name)
	return 0
}

// TestRecordUpstreamSuccess_IncrementsCounter はフェッチ成功カウンタが増加することを検証する。
func TestRecordUpstreamSuccess_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamSuccess("github")
	c.RecordUpstreamSuccess("github")
	c.RecordUpstreamSuccess("medium")

	if val := counterValue(t, reg, "portfolio_upstream_success_total"); val != 3 {
		t.Errorf("upstream_success_total = %v, want 3", val)
	}
}

// TestRecordUpstreamFailure_IncrementsCounter はフェッチ失敗カウンタが増加することを検証する。
func TestRecordUpstreamFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamFailure("medium")

	if val := counterValue(t, reg, "portfolio_upstream_fail_total"); val != 1 {
		t.Errorf("upstream_fail_total = %v, want 1", val)
	}
}

// TestRecordCacheHitMiss はキャッシュヒット/ミスのカウンタが増加することを検証する。
func TestRecordCacheHitMiss(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCacheHit("github")
	c.RecordCacheHit("github")
	c.RecordCacheMiss("github")

	if val := counterValue(t, reg, "portfolio_cache_hits_total"); val != 2 {
		t.Errorf("cache_hits_total = %v, want 2", val)
	}
	if val := counterValue(t, reg, "portfolio_cache_misses_total"); val != 1 {
		t.Errorf("cache_misses_total = %v, want 1", val)
	}
}

// TestRecordContactSend はコンタクト送信カウンタがoutcome別に増加することを検証する。
func TestRecordContactSend(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordContactSend("success")
	c.RecordContactSend("validation_error")

	if val := counterValue(t, reg, "portfolio_contact_send_total"); val != 2 {
		t.Errorf("contact_send_total = %v, want 2", val)
	}
}

// TestRecordUpstreamLatency_ObservesHistogram はレイテンシヒストグラムに観測値が入ることを検証する。
func TestRecordUpstreamLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamLatency(150 * time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "portfolio_upstream_latency_seconds" {
			found = true
			if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
				t.Errorf("sample count = %d, want 1", count)
			}
		}
	}
	if !found {
		t.Error("portfolio_upstream_latency_seconds metric not found")
	}
}

// TestHandler_ServesMetrics は/metricsハンドラーが登録済みメトリクスを出力することを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordUpstreamSuccess("github")

	ts := httptest.NewServer(Handler(reg))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "portfolio_upstream_success_total") {
		t.Error("expected portfolio_upstream_success_total in metrics output")
	}
}
