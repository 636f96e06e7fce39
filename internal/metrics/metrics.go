// Package metrics holds the Prometheus collectors for rolls, commitments and
// the ledger. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fairdice"

// Metrics collects counters for the roll lifecycle
type Metrics struct {
	commitmentsIssued  prometheus.Counter
	commitmentRestores prometheus.Counter
	rolls              *prometheus.CounterVec
	wagered            prometheus.Counter
	paidOut            prometheus.Counter
	integrityFaults    prometheus.Counter
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		commitmentsIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commitments_issued_total",
			Help:      "server seed commitments issued",
		}),
		commitmentRestores: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commitment_restores_total",
			Help:      "consumed commitments put back after a failed settlement",
		}),
		rolls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "settled rolls by result",
		}, []string{"result"}),
		wagered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wagered_credits_total",
			Help:      "credits staked on settled rolls",
		}),
		paidOut: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paid_out_credits_total",
			Help:      "credits paid back on winning rolls, stake included",
		}),
		integrityFaults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_faults_total",
			Help:      "persisted rolls or commitments that failed verification",
		}),
	}
}

// CommitmentIssued counts a newly issued commitment
func (m *Metrics) CommitmentIssued() {
	if m == nil {
		return
	}
	m.commitmentsIssued.Inc()
}

// CommitmentRestored counts a commitment returned after a failed settlement
func (m *Metrics) CommitmentRestored() {
	if m == nil {
		return
	}
	m.commitmentRestores.Inc()
}

// RollSettled records a settled roll and the credits it moved
func (m *Metrics) RollSettled(record *models.RollRecord) {
	if m == nil || record == nil {
		return
	}
	m.rolls.WithLabelValues(string(record.Result)).Inc()
	m.wagered.Add(float64(record.Wager))
	if record.Payout > 0 {
		m.paidOut.Add(float64(record.Payout))
	}
}

// IntegrityFault counts a failed verification
func (m *Metrics) IntegrityFault() {
	if m == nil {
		return
	}
	m.integrityFaults.Inc()
}
