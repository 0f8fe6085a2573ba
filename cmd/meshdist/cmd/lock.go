package cmd

import (
	"fmt"

	"github.com/hupe1980/meshdist"
	"github.com/hupe1980/meshdist/lockstore"
	"github.com/spf13/cobra"
)

var clearLock bool

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Store the current vertex selection",
	Long: `Freeze the vertex selection of every selected mesh in edit mode and
store it in the lock store. Later runs with --locked measure this set even
after the live selection changed.

Examples:
  meshdist lock --scene part.json
  meshdist lock --scene part.json --lock-store s3://bucket/part --compression zstd
  meshdist lock --clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx, storeURI)
		if err != nil {
			return err
		}
		if clearLock {
			return lockstore.Clear(ctx, store, lockKey)
		}

		sc, err := loadScene(scenePath)
		if err != nil {
			return err
		}
		sel, err := meshdist.LockSelection(sc)
		logger.LogLock(ctx, sel.Count(), len(sel), err)
		if err != nil {
			return err
		}

		opts, err := storeOptions()
		if err != nil {
			return err
		}
		if err := lockstore.Save(ctx, store, lockKey, sel, opts...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Locked %d vertices on %d meshes\n", sel.Count(), len(sel))
		return nil
	},
}

func init() {
	lockCmd.Flags().BoolVar(&clearLock, "clear", false, "remove the stored selection")
	rootCmd.AddCommand(lockCmd)
}
