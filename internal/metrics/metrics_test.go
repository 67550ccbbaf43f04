package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/strlab/internal/classify"
)

func TestCollector_ObserveOperation(t *testing.T) {
	c := New()

	c.ObserveOperation("reverse", classify.Cloned, 200*time.Nanosecond)
	c.ObserveOperation("reverse", classify.Cloned, 400*time.Nanosecond)
	c.ObserveOperation("repeat", classify.ReallocatedInPlace, time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.classes.WithLabelValues("reverse", "Cloned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.classes.WithLabelValues("repeat", "ReallocatedInPlace")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.durations))
}

func TestCollector_Summary(t *testing.T) {
	c := New()
	c.ObserveOperation("reverse", classify.Cloned, 200*time.Nanosecond)
	c.ObserveOperation("reverse", classify.Cloned, 400*time.Nanosecond)
	c.ObserveOperation("uppercase", classify.MutatedInPlace, time.Microsecond)
	c.ObserveOperation("uppercase", classify.Unchanged, time.Microsecond)
	c.ObserveFailure("uppercase", "clock")

	summary, err := c.Summary()
	require.NoError(t, err)
	require.Len(t, summary, 2)

	rev := summary[0]
	assert.Equal(t, "reverse", rev.Operation)
	assert.Equal(t, uint64(2), rev.Runs)
	assert.InDelta(t, float64(300*time.Nanosecond), float64(rev.Mean()), 1)
	assert.Equal(t, map[string]uint64{"Cloned": 2}, rev.Classes)

	up := summary[1]
	assert.Equal(t, "uppercase", up.Operation)
	assert.Equal(t, uint64(2), up.Runs)
	assert.Equal(t, uint64(1), up.Failures)
	assert.Equal(t, uint64(1), up.Classes["MutatedInPlace"])
	assert.Equal(t, uint64(1), up.Classes["Unchanged"])
}

func TestCollector_Concurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ObserveOperation("bracket", classify.ReallocatedInPlace, time.Microsecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, 16.0, testutil.ToFloat64(c.classes.WithLabelValues("bracket", "ReallocatedInPlace")))
}

func TestOperationSummary_MeanEmpty(t *testing.T) {
	assert.Zero(t, OperationSummary{}.Mean())
}
