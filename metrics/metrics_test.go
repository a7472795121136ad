package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/nel-io/netcore/metrics"
)

func TestNewRecorderIndependentRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.Accepts.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(a.Accepts))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.Accepts))
	assert.NotSame(t, a.Registry, b.Registry)
}

func TestNoOpSharedSingleton(t *testing.T) {
	a := metrics.NoOp()
	b := metrics.NoOp()
	assert.Same(t, a, b)
}

func TestRecorderGaugesAndCounters(t *testing.T) {
	r := metrics.New()
	r.Connections.Set(3)
	r.QueueDepth.Set(5)
	r.AcceptErrors.Inc()
	r.RegisterErrors.Inc()
	r.RearmErrors.Inc()
	r.OrderlyCloses.Inc()

	assert.Equal(t, float64(3), testutil.ToFloat64(r.Connections))
	assert.Equal(t, float64(5), testutil.ToFloat64(r.QueueDepth))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.AcceptErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.RegisterErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.RearmErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.OrderlyCloses))
}
