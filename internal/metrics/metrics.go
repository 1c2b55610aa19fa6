package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 汇总 web 前端的 prometheus 指标
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PaymentsTotal   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webfront",
			Name:      "requests_total",
			Help:      "处理过的 HTTP 请求总数",
		}, []string{"method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "webfront",
			Name:      "request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		PaymentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webfront",
			Name:      "payments_total",
			Help:      "发起的支付令牌化次数",
		}, []string{"outcome"}),
	}
}
