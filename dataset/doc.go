// Package dataset reads the two input tables of a clustering run and joins
// them into a point set.
//
// Each table is a headerless CSV file whose first column is an integral
// point identifier and whose remaining columns are coordinates. The tables
// are inner-joined on the identifier, the first table's columns first, and
// the joined rows are sorted by identifier.
//
// Files may be compressed; the codec is chosen by extension:
//
//	points.csv       plain
//	points.csv.gz    gzip
//	points.txt.zst   zstd
//	points.csv.lz4   lz4 frame
package dataset
