package meshdist

import (
	"context"
	"time"

	"github.com/hupe1980/meshdist/internal/pairs"
	"github.com/hupe1980/meshdist/internal/rank"
	"github.com/hupe1980/meshdist/internal/resolve"
	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/scene"
)

// Engine runs the refresh pipeline: resolve vertices, generate candidate
// pairs, then dedupe and rank them. It holds no per-scene state, only the
// logger and metrics collector, and is safe for concurrent use.
type Engine struct {
	opts options
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	return &Engine{opts: applyOptions(optFns)}
}

var defaultEngine = New()

// Refresh computes the current pair list with a default Engine.
func Refresh(cfg Config, sc scene.Scene) model.PairResult {
	return defaultEngine.Refresh(cfg, sc)
}

// Refresh computes the current pair list.
//
// It never fails: stale locked references are skipped and an empty
// selection yields an empty result. Calling it twice with the same config
// on an unchanged scene returns identical results. Topologies opened for a
// locked selection are released before it returns.
func (e *Engine) Refresh(cfg Config, sc scene.Scene) model.PairResult {
	res, _ := e.refresh(context.Background(), cfg, sc)
	return res
}

func (e *Engine) refresh(ctx context.Context, cfg Config, sc scene.Scene) (model.PairResult, RefreshStats) {
	start := time.Now()

	resolved := resolve.Resolve(cfg.resolveParams(e.opts.logger), sc)
	defer func() {
		if err := resolved.Close(); err != nil {
			e.opts.logger.WarnContext(ctx, "release topology failed", "error", err)
		}
	}()

	stats := RefreshStats{
		Vertices: len(resolved.Pool),
		Groups:   len(resolved.Groups),
		Skipped:  resolved.Skipped,
		Locked:   resolved.Locked,
	}
	if resolved.IsEmpty() {
		e.record(ctx, stats, start)
		return model.PairResult{}, stats
	}

	cands := pairs.Generate(resolved.Pool, traversals(resolved.Groups), cfg.MaxDistance, cfg.NeighborDepth)
	result := rank.Rank(cands, cfg.MaxPairs)

	stats.Candidates = len(cands)
	stats.Pairs = len(result)
	e.record(ctx, stats, start)
	return result, stats
}

func (e *Engine) record(ctx context.Context, stats RefreshStats, start time.Time) {
	d := time.Since(start)
	e.opts.metricsCollector.RecordRefresh(stats, d)
	e.opts.logger.LogRefresh(ctx, stats, d)
}

// traversals adapts resolved groups for the adjacency stage, dropping
// groups whose mesh has no topology.
func traversals(groups []*resolve.Group) []pairs.Group {
	out := make([]pairs.Group, 0, len(groups))
	for _, g := range groups {
		if g.Topology == nil {
			continue
		}
		out = append(out, pairs.Group{Graph: g, Anchors: g.Anchors})
	}
	return out
}
