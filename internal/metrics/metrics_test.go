package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoveryMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.DiscoveryStarted()
	m.DiscoveryStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.discoveryInFlight))

	m.DiscoveryFinished(OutcomeFound, 1.5)
	m.DiscoveryFinished(OutcomeFailed, 0.2)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.discoveryInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.discoveries.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.discoveries.WithLabelValues(OutcomeFailed)))
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.CompareToggled(ToggleAdded)
	m.CompareToggled(ToggleRejected)
	m.CatalogAppended("discovery")
	m.SessionCreated()
	m.SessionsSwept(3)
	m.ObserveRequest("GET", "/api/v1/products", "200", 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.compareToggles.WithLabelValues(ToggleRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogAppends.WithLabelValues("discovery")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsSwept))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/products", "200")))
}

func TestRegistersUnderNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SessionCreated()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "spechunter_sessions_created_total")
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
