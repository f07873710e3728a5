package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "storefront"

// CacheMetrics counts read-through cache hits and misses.
type CacheMetrics struct {
	lookups *prometheus.CounterVec
}

func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Cache lookups by cache name and result.",
	}, []string{"cache", "result"})
	reg.MustRegister(lookups)
	return &CacheMetrics{lookups: lookups}
}

func (c *CacheMetrics) Hit(cache string)   { c.inc(cache, "hit") }
func (c *CacheMetrics) Miss(cache string)  { c.inc(cache, "miss") }
func (c *CacheMetrics) Error(cache string) { c.inc(cache, "error") }

func (c *CacheMetrics) inc(cache, result string) {
	if c == nil || c.lookups == nil {
		return
	}
	c.lookups.WithLabelValues(normalizeLabel(cache), result).Inc()
}
