package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hupe1980/meshdist"
	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/promcollector"
	"github.com/hupe1980/meshdist/scene"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	interval    time.Duration
	gate        bool
	metricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint pairs whenever the scene file changes",
	Long: `Watch the scene file and print the pair list after every change,
like the editor overlay redrawing while vertices are moved.

Examples:
  meshdist watch --scene part.json
  meshdist watch --scene part.json --interval 250ms --gate --metrics-addr :9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := effectiveConfig(ctx, cmd)
		if err != nil {
			return err
		}
		sc, err := newReloadingScene(scenePath)
		if err != nil {
			return err
		}

		opts := []meshdist.Option{
			meshdist.WithLogger(logger),
			meshdist.WithInterval(interval),
			meshdist.WithChangeGating(gate),
			meshdist.WithOnRefresh(printer(cmd.OutOrStdout())),
		}
		if metricsAddr != "" {
			reg := prometheus.NewRegistry()
			opts = append(opts, meshdist.WithMetricsCollector(promcollector.New(reg)))
			go serveMetrics(ctx, metricsAddr, reg)
		}

		session := meshdist.NewSession(sc, func() meshdist.Config { return cfg }, opts...)
		if err := session.Activate(ctx); err != nil {
			return err
		}
		defer session.Deactivate()
		_ = printPairs(cmd.OutOrStdout(), session.Result())

		sched := meshdist.NewScheduler(session)
		return watchScene(ctx, sc, sched)
	},
}

func init() {
	f := watchCmd.Flags()
	f.BoolVar(&useLocked, "locked", false, "use the stored locked selection instead of the live one")
	f.DurationVar(&interval, "interval", meshdist.DefaultInterval, "refresh interval")
	f.BoolVar(&gate, "gate", false, "skip periodic refreshes while no vertex moved")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	addOverrideFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

// printer prints a result only when it differs from the previous one.
func printer(w io.Writer) func(model.PairResult) {
	var (
		mu   sync.Mutex
		last string
	)
	return func(res model.PairResult) {
		s := fmt.Sprint(res)
		mu.Lock()
		defer mu.Unlock()
		if s == last {
			return
		}
		last = s
		fmt.Fprintln(w, "---")
		_ = printPairs(w, res)
	}
}

// watchScene runs the scheduler and feeds it scene-change notifications
// until ctx is cancelled.
func watchScene(ctx context.Context, sc *reloadingScene, sched *meshdist.Scheduler) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(sc.path)); err != nil {
		return err
	}
	target := filepath.Clean(sc.path)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(ctx) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				logger.WarnContext(ctx, "watcher error", "error", err)
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if err := sc.reload(); err != nil {
					logger.WarnContext(ctx, "scene reload failed", "path", sc.path, "error", err)
					continue
				}
				sched.Notify(meshdist.SourceSceneChange)
			}
		}
	})
	return g.Wait()
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorContext(ctx, "metrics server failed", "error", err)
	}
}

// reloadingScene is a scene.Scene whose content is swapped on reload.
type reloadingScene struct {
	path    string
	current atomic.Pointer[scene.MemoryScene]
}

var _ scene.Scene = (*reloadingScene)(nil)

func newReloadingScene(path string) (*reloadingScene, error) {
	s := &reloadingScene{path: path}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *reloadingScene) reload() error {
	sc, err := loadScene(s.path)
	if err != nil {
		return err
	}
	s.current.Store(sc)
	return nil
}

func (s *reloadingScene) Selected() []scene.Mesh { return s.current.Load().Selected() }

func (s *reloadingScene) Lookup(name string) (scene.Mesh, bool) {
	return s.current.Load().Lookup(name)
}
