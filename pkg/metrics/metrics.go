// Package metrics exposes Prometheus counters for the draft and score
// paths. All methods are no-ops on a nil Manager so services can be tested
// without a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	pickAttempts    prometheus.Counter
	pickCommits     prometheus.Counter
	pickConflicts   prometheus.Counter
	draftsStarted   prometheus.Counter
	draftsCompleted prometheus.Counter
	scoreWrites     prometheus.Counter
}

func NewManager(registry prometheus.Registerer) *Manager {
	auto := promauto.With(registry)
	return &Manager{
		pickAttempts: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "eventor",
			Subsystem: "draft",
			Name:      "pick_attempts_total",
			Help:      "Total number of pickPlayer attempts",
		}),
		pickCommits: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "eventor",
			Subsystem: "draft",
			Name:      "pick_commits_total",
			Help:      "Total number of committed picks",
		}),
		pickConflicts: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "eventor",
			Subsystem: "draft",
			Name:      "pick_conflicts_total",
			Help:      "Total number of picks lost to a commit-time race",
		}),
		draftsStarted: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "eventor",
			Subsystem: "draft",
			Name:      "drafts_started_total",
			Help:      "Total number of drafts started",
		}),
		draftsCompleted: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "eventor",
			Subsystem: "draft",
			Name:      "drafts_completed_total",
			Help:      "Total number of drafts run to completion",
		}),
		scoreWrites: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "eventor",
			Subsystem: "scores",
			Name:      "score_writes_total",
			Help:      "Total number of score documents created, updated or deleted",
		}),
	}
}

func (m *Manager) PickAttempted() {
	if m != nil {
		m.pickAttempts.Inc()
	}
}

func (m *Manager) PickCommitted() {
	if m != nil {
		m.pickCommits.Inc()
	}
}

func (m *Manager) PickConflicted() {
	if m != nil {
		m.pickConflicts.Inc()
	}
}

func (m *Manager) DraftStarted() {
	if m != nil {
		m.draftsStarted.Inc()
	}
}

func (m *Manager) DraftCompleted() {
	if m != nil {
		m.draftsCompleted.Inc()
	}
}

func (m *Manager) ScoreWrites(n int) {
	if m != nil {
		m.scoreWrites.Add(float64(n))
	}
}
