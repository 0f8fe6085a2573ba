package meshdist

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScheduler(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
}

func TestScheduler_TicksRefresh(t *testing.T) {
	sc, _ := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0))
	var calls atomic.Int32
	session := NewSession(sc, DefaultConfig,
		WithInterval(5*time.Millisecond),
		WithOnRefresh(func(model.PairResult) { calls.Add(1) }),
	)
	require.NoError(t, session.Activate(context.Background()))

	runScheduler(t, NewScheduler(session))

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_CoalescesTriggers(t *testing.T) {
	sc, _ := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0))
	var calls atomic.Int32
	session := NewSession(sc, DefaultConfig,
		WithInterval(time.Hour),
		WithOnRefresh(func(model.PairResult) { calls.Add(1) }),
	)
	require.NoError(t, session.Activate(context.Background()))

	s := NewScheduler(session)
	for range 5 {
		s.Notify(SourceSceneChange)
		s.Notify(SourceUserAction)
	}
	runScheduler(t, s)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestScheduler_InactiveSessionIgnored(t *testing.T) {
	sc, _ := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0))
	metrics := &BasicMetricsCollector{}
	session := NewSession(sc, DefaultConfig,
		WithInterval(5*time.Millisecond),
		WithMetricsCollector(metrics),
	)

	runScheduler(t, NewScheduler(session))
	time.Sleep(40 * time.Millisecond)

	assert.Zero(t, metrics.GetStats().RefreshCount)
}

func TestScheduler_ChangeGating(t *testing.T) {
	sc, m := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0))
	metrics := &BasicMetricsCollector{}
	var last atomic.Value
	session := NewSession(sc, DefaultConfig,
		WithInterval(5*time.Millisecond),
		WithMetricsCollector(metrics),
		WithChangeGating(true),
		WithOnRefresh(func(r model.PairResult) { last.Store(r) }),
	)
	require.NoError(t, session.Activate(context.Background()))

	s := NewScheduler(session)
	runScheduler(t, s)

	require.Eventually(t, func() bool { return metrics.GetStats().SkippedRefreshes >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), metrics.GetStats().RefreshCount, "only the activation refreshed")

	// Movement lets the next tick through.
	require.NoError(t, m.SetVertex(1, math32.Vec3(3, 0, 0)))
	require.Eventually(t, func() bool {
		r, ok := last.Load().(model.PairResult)
		return ok && len(r) == 1 && r[0].Distance == 3
	}, 2*time.Second, 5*time.Millisecond)

	// Explicit notifications bypass the gate.
	before := metrics.GetStats().RefreshCount
	s.Notify(SourceUserAction)
	require.Eventually(t, func() bool { return metrics.GetStats().RefreshCount > before }, 2*time.Second, 5*time.Millisecond)
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "scene_change", SourceSceneChange.String())
	assert.Equal(t, "tick", SourceTick.String())
	assert.Equal(t, "user_action", SourceUserAction.String())
	assert.Equal(t, "unknown", Source(9).String())
}
