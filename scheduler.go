package meshdist

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Source is what asked for a refresh.
type Source int

const (
	// SourceSceneChange is a host notification that the scene was edited.
	SourceSceneChange Source = iota
	// SourceTick is the periodic timer.
	SourceTick
	// SourceUserAction is an explicit user action such as locking a selection.
	SourceUserAction
)

func (s Source) String() string {
	switch s {
	case SourceSceneChange:
		return "scene_change"
	case SourceTick:
		return "tick"
	case SourceUserAction:
		return "user_action"
	default:
		return "unknown"
	}
}

const tickOnly = uint32(1) << SourceTick

// Scheduler funnels scene-change notifications, periodic ticks and user
// actions into one refresh loop. Triggers arriving while a refresh is
// pending are merged, and recomputes are spaced at least one interval apart.
type Scheduler struct {
	session *Session
	opts    options
	limiter *rate.Limiter

	pending atomic.Uint32
	wake    chan struct{}
}

// NewScheduler creates a scheduler driving the given session.
func NewScheduler(s *Session, optFns ...Option) *Scheduler {
	opts := s.opts
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	return &Scheduler{
		session: s,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.interval), 1),
		wake:    make(chan struct{}, 1),
	}
}

// Notify requests a refresh. It never blocks.
func (s *Scheduler) Notify(src Source) {
	s.pending.Or(1 << src)
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run ticks and refreshes until ctx is cancelled. It returns nil on
// cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t := time.NewTicker(s.opts.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				s.Notify(SourceTick)
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-s.wake:
			}
			if err := s.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			s.run(ctx, s.pending.Swap(0))
		}
	})

	return g.Wait()
}

func (s *Scheduler) run(ctx context.Context, sources uint32) {
	if sources == 0 {
		return
	}
	if !s.session.Active() {
		return
	}
	if s.opts.gateOnChange && sources == tickOnly && !s.session.Changed() {
		s.opts.metricsCollector.RecordSkip(SourceTick)
		s.opts.logger.LogSkip(ctx, SourceTick)
		return
	}

	res, err := s.session.Refresh(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotActive) {
			s.opts.logger.ErrorContext(ctx, "refresh failed", "error", err)
		}
		return
	}
	if s.opts.onRefresh != nil {
		s.opts.onRefresh(res)
	}
}
