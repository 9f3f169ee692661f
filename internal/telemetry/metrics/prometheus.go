package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus builds the service registry. planStartDate is exported on
// mealplan_plan_info so day numbers on dashboards can be mapped to dates.
func SetupPrometheus(planStartDate string) *prometheus.Registry {
	planInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "mealplan",
		Name:        "plan_info",
		Help:        "Constant 1, labeled with the first day of the plan",
		ConstLabels: prometheus.Labels{"plan_start_date": planStartDate},
	})
	planInfo.Set(1)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		planInfo,
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsGC, collectors.MetricsMemory),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: "mealplan"}),
	)
	return reg
}
