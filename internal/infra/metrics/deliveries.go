package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(chapterDeliveriesTotal) }

var chapterDeliveriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chapter_deliveries_total",
		Help: "Chapter emails by delivery status (sent/error).",
	},
	[]string{"status"},
)

func AddChapterDeliveries(status string, n int) {
	chapterDeliveriesTotal.WithLabelValues(norm(status)).Add(float64(n))
}
