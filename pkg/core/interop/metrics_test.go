package interop

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegisterAndObserve(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.Observe("System.Runtime.CheckWitness", 200)
	m.Observe("System.Runtime.CheckWitness", 200)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "synapse_interop_syscall_invocations_total" {
			found = f
		}
	}
	require.NotNil(t, found, "invocation counter must be registered")
	require.Len(t, found.Metric, 1)
	require.Equal(t, 2.0, found.Metric[0].GetCounter().GetValue())
}

func TestMetricsObserveIsNilSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() { m.Observe("anything", 1) })
}

func TestRegistryInvokeFeedsMetrics(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterName("Test.Method", 42, func(ic *Context) error { return nil })
	metrics := NewMetrics()
	collector := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(collector))

	ic := newTestContext()
	ic.Metrics = metrics

	ok, err := reg.Invoke(ic, []byte("Test.Method"))
	require.NoError(t, err)
	require.True(t, ok)

	families, err := collector.Gather()
	require.NoError(t, err)
	var sawGas bool
	for _, f := range families {
		if f.GetName() == "synapse_interop_syscall_gas_charged" {
			sawGas = len(f.Metric) == 1
		}
	}
	require.True(t, sawGas, "gas histogram must record the invocation")
}
