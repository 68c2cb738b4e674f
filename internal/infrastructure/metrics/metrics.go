package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

var _ usecase.MetricsRecorder = (*Metrics)(nil)

// Metrics holds the ledger business metrics.
type Metrics struct {
	AccountsCreated     prometheus.Counter
	AccountsDeleted     prometheus.Counter
	AccountsActive      prometheus.Gauge
	Operations          *prometheus.CounterVec
	OperationAmount     *prometheus.HistogramVec
	WithdrawalsRejected prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),
		AccountsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finledger_accounts_active",
			Help: "Number of accounts currently registered",
		}),
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_operations_total",
				Help: "Total statement operations by type",
			},
			[]string{"type"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_operation_amount",
				Help:    "Statement operation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		WithdrawalsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "finledger_withdrawals_rejected_total",
			Help: "Withdrawals rejected for insufficient funds",
		}),
	}
}

// AccountCreated implements usecase.MetricsRecorder.
func (m *Metrics) AccountCreated() {
	m.AccountsCreated.Inc()
	m.AccountsActive.Inc()
}

// AccountDeleted implements usecase.MetricsRecorder.
func (m *Metrics) AccountDeleted() {
	m.AccountsDeleted.Inc()
	m.AccountsActive.Dec()
}

// OperationRecorded implements usecase.MetricsRecorder.
func (m *Metrics) OperationRecorded(opType domain.OperationType, amount decimal.Decimal) {
	m.Operations.WithLabelValues(string(opType)).Inc()
	m.OperationAmount.WithLabelValues(string(opType)).Observe(amount.InexactFloat64())
}

// WithdrawalRejected implements usecase.MetricsRecorder.
func (m *Metrics) WithdrawalRejected() {
	m.WithdrawalsRejected.Inc()
}
