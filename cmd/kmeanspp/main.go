package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/internal/config"
	"github.com/hupe1980/kmeanspp/random"
	"github.com/hupe1980/kmeanspp/report"

	"github.com/spf13/cobra"
)

const (
	msgInvalidInput = "Invalid Input!"
	msgGeneric      = "An Error Has Occurred"
)

// rootFlags holds the flags of the clustering command.
type rootFlags struct {
	cfgFile         string
	verbose         bool
	seed            uint64
	workers         int
	uniformFallback bool
	labels          bool
}

// clusterArgs are the positional arguments K [MAX_ITER] EPS FILE1 FILE2.
type clusterArgs struct {
	k       int
	maxIter int // 0 when not given
	eps     float64
	file1   string
	file2   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
// Failures print one of the two fixed messages to stdout.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stdout, exitMessage(err))
		return 1
	}
	return 0
}

// exitMessage maps an error to the message printed before exiting.
func exitMessage(err error) string {
	if errors.Is(err, kmeanspp.ErrInvalidInput) {
		return msgInvalidInput
	}
	return msgGeneric
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", kmeanspp.ErrInvalidInput, err)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "kmeanspp [flags] K [MAX_ITER] EPS FILE1 FILE2",
		Short: "Cluster the inner join of two tables with k-means++",
		Long: `kmeanspp joins two headerless CSV tables on their first column,
seeds K centroids with k-means++ and refines them with Lloyd's algorithm.

The first output line lists the identifiers of the seeded points, followed by
one line per refined centroid. MAX_ITER defaults to 300. Input files may be
compressed (.gz, .zst, .lz4).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(4, 5)(cmd, args); err != nil {
				return invalidInput(err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCluster(cmd, flags, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidInput(err)
	})

	cmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "YAML config file path")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.Flags().Uint64Var(&flags.seed, "seed", random.DefaultSeed, "random seed (overrides config)")
	cmd.Flags().IntVar(&flags.workers, "workers", 1, "assignment workers, 0 for GOMAXPROCS (overrides config)")
	cmd.Flags().BoolVar(&flags.uniformFallback, "uniform-fallback", false, "draw uniformly when all seeding weights are zero")
	cmd.Flags().BoolVar(&flags.labels, "labels", false, "also print the cluster of every point")

	cmd.AddCommand(newGenerateCmd())

	return cmd
}

func runCluster(cmd *cobra.Command, flags *rootFlags, args []string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	ca, err := parseClusterArgs(args)
	if err != nil {
		return err
	}
	if ca.maxIter == 0 {
		ca.maxIter = cfg.MaxIter
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg, flags.verbose)
	if err != nil {
		return err
	}

	ps, err := dataset.Load(ca.file1, ca.file2)
	if err != nil {
		return err
	}

	opts := []kmeanspp.Option{
		kmeanspp.WithLogger(logger),
		kmeanspp.WithWorkers(cfg.Workers),
	}
	if cfg.UniformFallback {
		opts = append(opts, kmeanspp.WithUniformFallback())
	}

	engine := kmeanspp.New(opts...)

	res, err := engine.Run(cmd.Context(), ps, ca.k, ca.maxIter, ca.eps, random.New(cfg.Seed))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.Write(out, res.InitialIDs, res.Centroids); err != nil {
		return err
	}

	if flags.labels {
		labels, err := engine.Assign(ps, res.Centroids)
		if err != nil {
			return err
		}
		if err := report.WriteLabels(out, ps.IDs(), labels); err != nil {
			return err
		}
	}

	return nil
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return nil, invalidInput(err)
	}

	fs := cmd.Flags()
	if fs.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if fs.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if fs.Changed("uniform-fallback") {
		cfg.UniformFallback = flags.uniformFallback
	}

	return cfg, nil
}

func parseClusterArgs(args []string) (*clusterArgs, error) {
	var (
		ca  clusterArgs
		err error
	)

	if ca.k, err = strconv.Atoi(args[0]); err != nil {
		return nil, invalidInput(fmt.Errorf("K: %w", err))
	}

	rest := args[1:]
	if len(args) == 5 {
		if ca.maxIter, err = strconv.Atoi(rest[0]); err != nil {
			return nil, invalidInput(fmt.Errorf("MAX_ITER: %w", err))
		}
		if ca.maxIter <= 0 {
			return nil, invalidInput(fmt.Errorf("MAX_ITER must be positive, got %d", ca.maxIter))
		}
		rest = rest[1:]
	}

	if ca.eps, err = strconv.ParseFloat(rest[0], 64); err != nil {
		return nil, invalidInput(fmt.Errorf("EPS: %w", err))
	}

	ca.file1, ca.file2 = rest[1], rest[2]

	return &ca, nil
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) (*kmeanspp.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, invalidInput(err)
	}
	if verbose {
		level = slog.LevelDebug
	}

	hopts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return kmeanspp.NewLogger(slog.NewJSONHandler(w, hopts)), nil
	}
	return kmeanspp.NewLogger(slog.NewTextHandler(w, hopts)), nil
}
