// Package report formats clustering results as text.
package report

import (
	"bufio"
	"io"
	"strconv"
)

// Precision is the number of decimal places written per coordinate.
const Precision = 4

// Write writes the initial centroid identifiers on one line, comma-separated
// in selection order, followed by one line per centroid with its coordinates
// comma-separated at Precision decimal places.
func Write(w io.Writer, ids []int64, centroids [][]float64) error {
	bw := bufio.NewWriter(w)

	var buf []byte
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, id, 10)
	}
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for _, c := range centroids {
		buf = AppendVector(buf[:0], c)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteLabels writes one "id,cluster" line per point.
func WriteLabels(w io.Writer, ids []int64, labels []int) error {
	bw := bufio.NewWriter(w)

	var buf []byte
	for i, id := range ids {
		buf = strconv.AppendInt(buf[:0], id, 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(labels[i]), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// AppendVector appends v formatted as comma-separated fixed-point numbers.
// Values that round to zero keep their sign, so -0.00001 prints as -0.0000.
func AppendVector(dst []byte, v []float64) []byte {
	for j, x := range v {
		if j > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendFloat(dst, x, 'f', Precision, 64)
	}
	return dst
}
