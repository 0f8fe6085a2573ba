package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/meshdist"
	"github.com/hupe1980/meshdist/codec"
	"github.com/hupe1980/meshdist/lockstore"
	"github.com/hupe1980/meshdist/model"
	"github.com/spf13/cobra"
)

var (
	useLocked  bool
	jsonOutput bool
	overrides  struct {
		maxDistance float32
		maxVertices int
		maxPairs    int
		depth       int
	}
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Print the closest vertex pairs",
	Long: `Print the closest vertex pairs of the selected meshes, nearest first.

Examples:
  meshdist pairs --scene part.json
  meshdist pairs --scene part.json --max-distance 2.5 --depth 2
  meshdist pairs --scene part.json --locked --lock-store s3://bucket/part`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := effectiveConfig(ctx, cmd)
		if err != nil {
			return err
		}
		sc, err := loadScene(scenePath)
		if err != nil {
			return err
		}

		eng := meshdist.New(meshdist.WithLogger(logger))
		res := eng.Refresh(cfg, sc)
		return printPairs(cmd.OutOrStdout(), res)
	},
}

func init() {
	f := pairsCmd.Flags()
	f.BoolVar(&useLocked, "locked", false, "use the stored locked selection instead of the live one")
	f.BoolVar(&jsonOutput, "json", false, "print pairs as JSON")
	addOverrideFlags(pairsCmd)
	rootCmd.AddCommand(pairsCmd)
}

func addOverrideFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float32Var(&overrides.maxDistance, "max-distance", 0, "keep pairs at most this far apart")
	f.IntVar(&overrides.maxVertices, "max-vertices", 0, "cap on considered vertices")
	f.IntVar(&overrides.maxPairs, "max-pairs", 0, "cap on printed pairs")
	f.IntVar(&overrides.depth, "depth", 0, "edge hops walked from each selected vertex")
}

// effectiveConfig loads the config file, applies flag overrides and, when
// locking is on, the stored locked selection.
func effectiveConfig(ctx context.Context, cmd *cobra.Command) (meshdist.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("max-distance") {
		cfg.MaxDistance = overrides.maxDistance
	}
	if f.Changed("max-vertices") {
		cfg.MaxVertices = overrides.maxVertices
	}
	if f.Changed("max-pairs") {
		cfg.MaxPairs = overrides.maxPairs
	}
	if f.Changed("depth") {
		cfg.NeighborDepth = overrides.depth
	}
	if f.Changed("locked") {
		cfg.LockEnabled = useLocked
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if cfg.LockEnabled {
		store, err := openStore(ctx, storeURI)
		if err != nil {
			return cfg, err
		}
		cfg.Locked, err = lockstore.Load(ctx, store, lockKey, lockstore.WithLogger(logger.Logger))
		if err != nil {
			return cfg, fmt.Errorf("load locked selection: %w", err)
		}
	}
	return cfg, nil
}

type pairJSON struct {
	A        [3]float32 `json:"a"`
	B        [3]float32 `json:"b"`
	Midpoint [3]float32 `json:"midpoint"`
	Distance float32    `json:"distance"`
	Label    string     `json:"label"`
}

func printPairs(w io.Writer, res model.PairResult) error {
	if jsonOutput {
		out := make([]pairJSON, len(res))
		for i, p := range res {
			mid := p.Midpoint()
			out[i] = pairJSON{
				A:        [3]float32{p.A.X, p.A.Y, p.A.Z},
				B:        [3]float32{p.B.X, p.B.Y, p.B.Z},
				Midpoint: [3]float32{mid.X, mid.Y, mid.Z},
				Distance: p.Distance,
				Label:    p.Label(),
			}
		}
		data, err := codec.Default.Marshal(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if res.IsEmpty() {
		_, err := fmt.Fprintln(w, "No pairs found")
		return err
	}
	for i, p := range res {
		mid := p.Midpoint()
		if _, err := fmt.Fprintf(w, "%3d  %10s  at (%.3f, %.3f, %.3f)\n", i+1, p.Label(), mid.X, mid.Y, mid.Z); err != nil {
			return err
		}
	}
	return nil
}
