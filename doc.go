// Package meshdist finds the closest vertex pairs in a 3D scene.
//
// It powers a measurement overlay: given the meshes a user has selected,
// it reports the nearest vertex pairs and their distances so they can be
// drawn as labelled lines. Rendering and UI are left to the host; meshdist
// only reads the scene through the scene.Scene and scene.Mesh interfaces.
//
// # Quick Start
//
//	sc := scene.NewMemoryScene(cube)
//	sc.Select("Cube")
//
//	res := meshdist.Refresh(meshdist.DefaultConfig(), sc)
//	for _, p := range res {
//	    fmt.Println(p.Label(), p.Midpoint())
//	}
//
// # Vertex Sources
//
// A refresh considers, in order of precedence:
//
//   - the locked selection, when Config.LockEnabled is set and it resolves
//     to at least one vertex
//   - the live edit-mode selection, expanded from edges and faces to vertices
//   - every vertex of selected meshes in object mode
//
// Locked references to deleted meshes or vertices are skipped silently.
// Use LockSelection to freeze the current selection and the lockstore
// package to persist it.
//
// # Candidate Pairs
//
// Every pair of considered vertices within Config.MaxDistance is a
// candidate. In addition, from every edit-mode or locked vertex a
// breadth-first walk follows mesh edges up to Config.NeighborDepth hops,
// so connected vertices outside the selection are measured too. Candidates
// are deduplicated by endpoint position, sorted by distance and cut to
// Config.MaxPairs.
//
// # Live Updates
//
// A Session keeps the current result for one activation of the overlay.
// A Scheduler drives it from three sources: host scene-change
// notifications, a periodic tick and explicit user actions. Triggers
// arriving within one interval are merged into a single recompute.
//
//	s := meshdist.NewSession(sc, currentConfig,
//	    meshdist.WithOnRefresh(redraw),
//	)
//	if err := s.Activate(ctx); errors.Is(err, meshdist.ErrNoPairs) {
//	    warn("no pairs found")
//	}
//	sched := meshdist.NewScheduler(s)
//	go sched.Run(ctx)
//	...
//	sched.Notify(meshdist.SourceSceneChange)
//
// # Observability
//
// Pass WithLogger for structured slog output and WithMetricsCollector for
// refresh statistics; see BasicMetricsCollector and the promcollector
// package.
package meshdist
