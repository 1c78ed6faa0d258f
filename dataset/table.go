package dataset

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/pointset"
)

// Table is one parsed input file.
type Table struct {
	ids  []int64
	rows [][]float64
	byID map[int64]int
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.ids) }

// ID returns the identifier of row i.
func (t *Table) ID(i int) int64 { return t.ids[i] }

// Row returns the coordinates of row i, without the identifier.
func (t *Table) Row(i int) []float64 { return t.rows[i] }

// Load reads both tables and joins them.
func Load(path1, path2 string) (*pointset.Set, error) {
	// Both paths are checked before either file is parsed.
	for _, p := range []string{path1, path2} {
		if _, err := checkPath(p); err != nil {
			return nil, err
		}
	}

	a, err := ReadTable(path1)
	if err != nil {
		return nil, err
	}
	b, err := ReadTable(path2)
	if err != nil {
		return nil, err
	}
	return Join(a, b)
}

// ReadTable reads a table from path, decompressing by extension.
func ReadTable(path string) (*Table, error) {
	c, err := checkPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kmeanspp.ErrGeneric, err)
	}
	defer f.Close()

	r, err := NewReader(f, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	defer r.Close()

	t, err := ParseTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// checkPath verifies that path names an existing regular file with a .csv
// or .txt extension, optionally followed by a compression suffix.
func checkPath(path string) (Compression, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return CompressionNone, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if fi.IsDir() {
		return CompressionNone, fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}

	c, base := DetectCompression(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv", ".txt":
		return c, nil
	default:
		return c, fmt.Errorf("%w: %s: expected .csv or .txt", ErrInvalidPath, path)
	}
}

// ParseTable parses headerless CSV rows of the form id,x1,x2,...
// Every row must have the same number of fields.
func ParseTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Table{byID: make(map[int64]int)}

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		id, err := parseID(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
		if _, ok := t.byID[id]; ok {
			return nil, fmt.Errorf("%w: line %d: duplicate id %d", ErrMalformed, line, id)
		}

		row := make([]float64, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %d: %w", ErrMalformed, line, j+2, err)
			}
			row[j] = v
		}

		t.byID[id] = len(t.ids)
		t.ids = append(t.ids, id)
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// parseID accepts integers written either plainly ("7") or as an integral
// float ("7.0").
func parseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("id %q is not an integer", s)
	}
	return int64(v), nil
}

// Join inner-joins a and b on the identifier. Each joined point carries a's
// coordinates followed by b's. Points are sorted by identifier.
func Join(a, b *Table) (*pointset.Set, error) {
	points := make([]pointset.Point, 0, min(a.Len(), b.Len()))

	for i, id := range a.ids {
		j, ok := b.byID[id]
		if !ok {
			continue
		}
		coords := make([]float64, 0, len(a.rows[i])+len(b.rows[j]))
		coords = append(coords, a.rows[i]...)
		coords = append(coords, b.rows[j]...)
		points = append(points, pointset.Point{ID: id, Coords: coords})
	}

	slices.SortFunc(points, func(x, y pointset.Point) int {
		return cmp.Compare(x.ID, y.ID)
	})

	return kmeanspp.NewPointSet(points)
}

// WriteTable writes rows in the format ParseTable reads.
func WriteTable(w io.Writer, ids []int64, rows [][]float64) error {
	if len(ids) != len(rows) {
		return fmt.Errorf("ids and rows differ in length: %d != %d", len(ids), len(rows))
	}

	cw := csv.NewWriter(w)
	var rec []string
	for i, row := range rows {
		rec = append(rec[:0], strconv.FormatInt(ids[i], 10))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Create creates path for writing, compressing by extension.
// Closing the result flushes the compressor and closes the file.
func Create(path string) (io.WriteCloser, error) {
	c, _ := DetectCompression(path)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(f, c)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &fileWriter{WriteCloser: w, f: f}, nil
}

type fileWriter struct {
	io.WriteCloser
	f *os.File
}

func (fw *fileWriter) Close() error {
	return errors.Join(fw.WriteCloser.Close(), fw.f.Close())
}
