package monitoring

import (
	"brewja/internal/brewery"
	"brewja/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects production counters and stock gauges for Prometheus.
type Metrics struct {
	actions    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	tankVolume *prometheus.GaugeVec
	kegsByStat *prometheus.GaugeVec
	bottles    prometheus.Gauge
}

// New registers the brewery collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "brewja_actions_total",
			Help: "Production actions applied, by action type.",
		}, []string{"action"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "brewja_rejected_operations_total",
			Help: "Operations rejected by the engine, by failure kind.",
		}, []string{"kind"}),
		tankVolume: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "brewja_tank_volume_liters",
			Help: "Current liquid volume per fermenter.",
		}, []string{"tank"}),
		kegsByStat: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "brewja_kegs",
			Help: "Keg fleet size by status.",
		}, []string{"status"}),
		bottles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "brewja_bottles_total",
			Help: "Bottled units in stock across all lots.",
		}),
	}
}

// RecordAction counts one applied production action.
func (m *Metrics) RecordAction(action models.ActionType) {
	m.actions.WithLabelValues(string(action)).Inc()
}

// RecordRejection counts one rejected operation.
func (m *Metrics) RecordRejection(err error) {
	m.rejections.WithLabelValues(brewery.Kind(err)).Inc()
}

// ObserveSnapshot refreshes the stock gauges from an engine snapshot.
func (m *Metrics) ObserveSnapshot(snap brewery.Snapshot) {
	m.tankVolume.Reset()
	for _, t := range snap.Tanks {
		m.tankVolume.WithLabelValues(t.TankID).Set(t.Volume)
	}

	m.kegsByStat.Reset()
	counts := make(map[models.KegStatus]int)
	for _, k := range snap.Kegs {
		counts[k.Status]++
	}
	for status, n := range counts {
		m.kegsByStat.WithLabelValues(string(status)).Set(float64(n))
	}

	total := 0
	for _, lot := range snap.Bottles {
		total += lot.Count
	}
	m.bottles.Set(float64(total))
}
