package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/meshdist"
	"github.com/hupe1980/meshdist/codec"
	"github.com/hupe1980/meshdist/lockstore"
	"github.com/hupe1980/meshdist/scene"
	"github.com/spf13/cobra"
)

var (
	scenePath   string
	configPath  string
	storeURI    string
	lockKey     string
	codecName   string
	compression string
	logLevel    string
	logFormat   string

	logger *meshdist.Logger
)

var rootCmd = &cobra.Command{
	Use:   "meshdist",
	Short: "Closest vertex pairs of a 3D scene",
	Long: `meshdist measures the closest vertex pairs of the selected meshes in a
scene file, the same way the editor overlay does.

Pairs come from the live edit-mode selection, or from a locked selection
previously stored with "meshdist lock".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		switch logFormat {
		case "json":
			logger = meshdist.NewJSONLogger(level)
		case "text":
			logger = meshdist.NewTextLogger(level)
		default:
			return fmt.Errorf("invalid --log-format %q", logFormat)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&scenePath, "scene", "s", "scene.json", "path to the scene file")
	f.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	f.StringVar(&storeURI, "lock-store", ".meshdist", "lock store: directory, s3://bucket/prefix, minio://host/bucket/prefix or dynamodb://table/scope")
	f.StringVar(&lockKey, "lock-key", lockstore.DefaultKey, "key of the locked selection in the lock store")
	f.StringVar(&codecName, "codec", "", "codec for stored selections (json, go-json); empty writes plain JSON")
	f.StringVar(&compression, "compression", "none", "compression for stored selections (none, lz4, zstd)")
	f.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

func loadScene(path string) (*scene.MemoryScene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scene.Decode(f, nil)
}

func loadConfig() (meshdist.Config, error) {
	if configPath == "" {
		return meshdist.DefaultConfig(), nil
	}
	f, err := os.Open(configPath)
	if err != nil {
		return meshdist.Config{}, err
	}
	defer f.Close()
	return meshdist.LoadConfig(f)
}

func storeOptions() ([]lockstore.Option, error) {
	opts := []lockstore.Option{lockstore.WithLogger(logger.Logger)}
	if codecName != "" {
		c, ok := codec.ByName(codecName)
		if !ok {
			return nil, fmt.Errorf("unknown codec %q", codecName)
		}
		opts = append(opts, lockstore.WithCodec(c))
	}
	comp, err := lockstore.ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return append(opts, lockstore.WithCompression(comp)), nil
}
