/*
Package observability exports engine activity as Prometheus metrics.

Metrics are registered on a caller-provided registry and fed through domain.Hooks, so
the engine itself never imports Prometheus:

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	eng, err := deeds.New(path, deeds.WithHooks(m.Hooks()))
*/
package observability
