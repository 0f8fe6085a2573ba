package meshdist

import (
	"context"
	"sync"

	"github.com/hupe1980/meshdist/internal/change"
	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/scene"
)

// Session owns the current pair result for one activation of the feature.
//
// It is created when the feature is switched on, replaces its result on
// every refresh and drops it when switched off. Hosts hand the session to
// whatever needs the result (draw callbacks, the Scheduler) instead of
// keeping the result in package state.
type Session struct {
	engine *Engine
	scene  scene.Scene
	config func() Config
	opts   options

	mu       sync.RWMutex
	active   bool
	result   model.PairResult
	snapshot model.VertexSnapshot
}

// NewSession creates an inactive session. config is called on every
// refresh so the host's current settings are always used.
func NewSession(sc scene.Scene, config func() Config, optFns ...Option) *Session {
	opts := applyOptions(optFns)
	return &Session{
		engine: &Engine{opts: opts},
		scene:  sc,
		config: config,
		opts:   opts,
	}
}

// Activate computes the first result. When it is empty the session stays
// inactive and ErrNoPairs is returned.
func (s *Session) Activate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	cfg := s.config()
	res, _ := s.engine.refresh(ctx, cfg, s.scene)
	if res.IsEmpty() {
		s.opts.logger.LogActivate(ctx, 0, ErrNoPairs)
		return ErrNoPairs
	}

	s.active = true
	s.result = res
	s.snapshot = change.Take(cfg.resolveParams(s.opts.logger), s.scene)
	s.opts.logger.LogActivate(ctx, len(res), nil)
	return nil
}

// Deactivate drops the result and snapshot.
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	s.active = false
	s.result = nil
	s.snapshot = nil
}

// Active reports whether the session is switched on.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Result returns the current pair list; empty when inactive.
func (s *Session) Result() model.PairResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Refresh recomputes and stores the result. Unlike Activate, an empty
// result is kept: the host decides how to present it.
func (s *Session) Refresh(ctx context.Context) (model.PairResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil, ErrNotActive
	}

	cfg := s.config()
	res, _ := s.engine.refresh(ctx, cfg, s.scene)
	s.result = res
	s.snapshot = change.Take(cfg.resolveParams(s.opts.logger), s.scene)
	return res, nil
}

// Changed reports whether the considered vertices moved since the last
// refresh. It is advisory; Refresh never consults it.
func (s *Session) Changed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return false
	}
	cur := change.Take(s.config().resolveParams(s.opts.logger), s.scene)
	return change.Changed(s.snapshot, cur, s.opts.changeThreshold)
}
