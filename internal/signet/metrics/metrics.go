// Package metrics exposes Prometheus instrumentation for the token
// service. All collectors register against an injected registry so tests
// can create isolated instances.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aussiebroadwan/signet/pkg/jwtx"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	TokensIssued     *prometheus.CounterVec
	TokenValidations *prometheus.CounterVec
	KeysGenerated    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg, together with
// gauges reading live key counts from the store.
func New(reg prometheus.Registerer, keys *jwtx.KeyStore) *Metrics {
	m := &Metrics{
		TokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signet",
			Name:      "tokens_issued_total",
			Help:      "Tokens issued, partitioned by signing key class.",
		}, []string{"key_class"}),

		TokenValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signet",
			Name:      "token_validations_total",
			Help:      "Token validations, partitioned by verdict.",
		}, []string{"verdict"}),

		KeysGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signet",
			Name:      "keys_generated_total",
			Help:      "RSA keys generated, partitioned by key class.",
		}, []string{"key_class"}),
	}

	reg.MustRegister(m.TokensIssued, m.TokenValidations, m.KeysGenerated)

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "signet",
		Name:      "keys_total",
		Help:      "Keys held by the store, including expired ones.",
	}, func() float64 {
		return float64(keys.Len())
	}))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "signet",
		Name:      "keys_publishable",
		Help:      "Keys currently visible in the published JWKS.",
	}, func() float64 {
		return float64(keys.PublishableLen())
	}))

	return m
}

// KeyClass labels for the tokens_issued and keys_generated counters.
const (
	KeyClassActive  = "active"
	KeyClassExpired = "expired"
)

// ObserveIssue records a token issuance against the signing key class.
func (m *Metrics) ObserveIssue(expiredKey bool) {
	class := KeyClassActive
	if expiredKey {
		class = KeyClassExpired
	}
	m.TokensIssued.WithLabelValues(class).Inc()
}

// ObserveValidation records a validation verdict.
func (m *Metrics) ObserveValidation(verdict jwtx.Verdict) {
	m.TokenValidations.WithLabelValues(string(verdict)).Inc()
}

// ObserveKeyGenerated records a key generation event.
func (m *Metrics) ObserveKeyGenerated(expired bool) {
	class := KeyClassActive
	if expired {
		class = KeyClassExpired
	}
	m.KeysGenerated.WithLabelValues(class).Inc()
}
