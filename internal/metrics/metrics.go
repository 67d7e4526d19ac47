// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// アップストリーム（GitHub / Medium / Resend）への呼び出しとキャッシュの状態を記録する。
type Collector struct {
	upstreamSuccess *prometheus.CounterVec
	upstreamFail    *prometheus.CounterVec
	upstreamStatus  *prometheus.CounterVec
	upstreamLatency prometheus.Histogram
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	contactSends    *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_upstream_success_total",
			Help: "アップストリームフェッチ成功の合計数（source別）",
		}, []string{"source"}),
		upstreamFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_upstream_fail_total",
			Help: "アップストリームフェッチ失敗の合計数（source別）",
		}, []string{"source"}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_upstream_status_total",
			Help: "アップストリームHTTPステータスコード別のレスポンス数",
		}, []string{"source", "status_code"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portfolio_upstream_latency_seconds",
			Help:    "アップストリームフェッチのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_cache_hits_total",
			Help: "キャッシュヒットの合計数（source別）",
		}, []string{"source"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_cache_misses_total",
			Help: "キャッシュミスの合計数（source別）",
		}, []string{"source"}),
		contactSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_send_total",
			Help: "コンタクトフォーム送信の合計数（outcome別）",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.upstreamSuccess,
		c.upstreamFail,
		c.upstreamStatus,
		c.upstreamLatency,
		c.cacheHits,
		c.cacheMisses,
		c.contactSends,
	)

	return c
}

// RecordUpstreamSuccess はアップストリームフェッチ成功を記録する。
func (c *Collector) RecordUpstreamSuccess(source string) {
	c.upstreamSuccess.WithLabelValues(source).Inc()
}

// RecordUpstreamFailure はアップストリームフェッチ失敗を記録する。
func (c *Collector) RecordUpstreamFailure(source string) {
	c.upstreamFail.WithLabelValues(source).Inc()
}

// RecordUpstreamStatus はアップストリームのHTTPステータスコードを記録する。
func (c *Collector) RecordUpstreamStatus(source string, statusCode int) {
	c.upstreamStatus.WithLabelValues(source, strconv.Itoa(statusCode)).Inc()
}

// RecordUpstreamLatency はアップストリームフェッチのレイテンシを記録する。
func (c *Collector) RecordUpstreamLatency(duration time.Duration) {
	c.upstreamLatency.Observe(duration.Seconds())
}

// RecordCacheHit はキャッシュヒットを記録する。
func (c *Collector) RecordCacheHit(source string) {
	c.cacheHits.WithLabelValues(source).Inc()
}

// RecordCacheMiss はキャッシュミスを記録する。
func (c *Collector) RecordCacheMiss(source string) {
	c.cacheMisses.WithLabelValues(source).Inc()
}

// RecordContactSend はコンタクトフォーム送信の結果を記録する。
// outcomeは success, validation_error, config_error, send_error のいずれか。
func (c *Collector) RecordContactSend(outcome string) {
	c.contactSends.WithLabelValues(outcome).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
