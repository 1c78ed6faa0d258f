package main

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/testutil"

	"github.com/spf13/cobra"
)

type generateFlags struct {
	points   int
	dim      int
	clusters int
	scale    float64
	spread   float64
	seed     int64
	firstID  int64
}

// newGenerateCmd returns the command that writes synthetic clustered tables.
// With two files the columns are split between them, so the pair can be fed
// straight back into the clustering command.
func newGenerateCmd() *cobra.Command {
	gf := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [flags] FILE1 [FILE2]",
		Short: "Write synthetic clustered input tables",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return invalidInput(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(gf, args)
		},
	}

	cmd.Flags().IntVar(&gf.points, "points", 1000, "number of points")
	cmd.Flags().IntVar(&gf.dim, "dim", 2, "total number of coordinates")
	cmd.Flags().IntVar(&gf.clusters, "clusters", 3, "number of blob centers")
	cmd.Flags().Float64Var(&gf.scale, "scale", 10, "centers are drawn from [-scale, scale)")
	cmd.Flags().Float64Var(&gf.spread, "spread", 1, "standard deviation around each center")
	cmd.Flags().Int64Var(&gf.seed, "seed", 0, "random seed")
	cmd.Flags().Int64Var(&gf.firstID, "first-id", 0, "identifier of the first row")

	return cmd
}

func (gf *generateFlags) validate(files int) error {
	var errs []error

	if gf.points <= 0 {
		errs = append(errs, fmt.Errorf("points must be positive, got %d", gf.points))
	}
	if gf.dim < files {
		errs = append(errs, fmt.Errorf("dim must be at least %d, got %d", files, gf.dim))
	}
	if gf.clusters <= 0 {
		errs = append(errs, fmt.Errorf("clusters must be positive, got %d", gf.clusters))
	}
	if gf.spread < 0 {
		errs = append(errs, fmt.Errorf("spread must not be negative, got %v", gf.spread))
	}

	if err := errors.Join(errs...); err != nil {
		return invalidInput(err)
	}
	return nil
}

func runGenerate(gf *generateFlags, files []string) error {
	if err := gf.validate(len(files)); err != nil {
		return err
	}

	rows := testutil.NewRNG(gf.seed).ClusteredRows(gf.points, gf.dim, gf.clusters, gf.scale, gf.spread)

	ids := make([]int64, gf.points)
	for i := range ids {
		ids[i] = gf.firstID + int64(i)
	}

	// Left file gets the first ceil(dim/2) columns.
	split := gf.dim
	if len(files) == 2 {
		split = (gf.dim + 1) / 2
	}

	if err := writeColumns(files[0], ids, rows, 0, split); err != nil {
		return err
	}
	if len(files) == 2 {
		return writeColumns(files[1], ids, rows, split, gf.dim)
	}
	return nil
}

func writeColumns(path string, ids []int64, rows [][]float64, from, to int) (err error) {
	w, err := dataset.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	cols := make([][]float64, len(rows))
	for i, row := range rows {
		cols[i] = row[from:to]
	}

	return dataset.WriteTable(w, ids, cols)
}
