package promcollector

import (
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist"
	"github.com/hupe1980/meshdist/scene"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRefresh(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordRefresh(meshdist.RefreshStats{Vertices: 3, Candidates: 4, Pairs: 2, Skipped: 1, Locked: true}, time.Millisecond)
	c.RecordRefresh(meshdist.RefreshStats{Vertices: 1}, time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(c.refreshes.WithLabelValues("pairs")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.refreshes.WithLabelValues("empty")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(c.candidates), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.skippedRefs), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.poolSize), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(c.refreshDuration))
}

func TestCollector_RecordSkip(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.RecordSkip(meshdist.SourceTick)
	c.RecordSkip(meshdist.SourceTick)

	assert.InDelta(t, 2, testutil.ToFloat64(c.skips.WithLabelValues("tick")), 0)
}

func TestCollector_WithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	eng := meshdist.New(meshdist.WithMetricsCollector(c))

	m := scene.NewMemoryMesh("Cube", []math32.Vector3{{}, {X: 1}}, nil, nil)
	sc := scene.NewMemoryScene(m)
	sc.Select("Cube")

	res := eng.Refresh(meshdist.DefaultConfig(), sc)
	require.Len(t, res, 1)

	n, err := testutil.GatherAndCount(reg, "meshdist_refresh_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
