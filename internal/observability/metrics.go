package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters the auth core exports. Ledger write failures get
// their own counter: repeated failures silently disable throttling, so they
// must be alertable.
type Metrics struct {
	LoginAttempts       *prometheus.CounterVec
	ThrottleRejections  prometheus.Counter
	LedgerWriteFailures prometheus.Counter
	SessionsRevoked     *prometheus.CounterVec
}

// NewMetrics creates and registers the metric set on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "praxida_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		ThrottleRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "praxida_throttle_rejections_total",
			Help: "Login attempts rejected while the identity was locked out.",
		}),
		LedgerWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "praxida_ledger_write_failures_total",
			Help: "Failed writes to the login attempt ledger.",
		}),
		SessionsRevoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "praxida_sessions_revoked_total",
			Help: "Sessions revoked, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.LoginAttempts, m.ThrottleRejections, m.LedgerWriteFailures, m.SessionsRevoked)
	return m
}
