package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec of an input or output file.
type Compression uint8

const (
	// CompressionNone indicates a plain file.
	CompressionNone Compression = iota
	// CompressionGzip indicates a gzip stream (.gz).
	CompressionGzip
	// CompressionZSTD indicates a zstd stream (.zst, .zstd).
	CompressionZSTD
	// CompressionLZ4 indicates an lz4 frame (.lz4).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// DetectCompression returns the codec implied by the file name and the name
// with the codec suffix removed.
func DetectCompression(path string) (Compression, string) {
	ext := strings.ToLower(filepath.Ext(path))
	base := path[:len(path)-len(ext)]

	switch ext {
	case ".gz":
		return CompressionGzip, base
	case ".zst", ".zstd":
		return CompressionZSTD, base
	case ".lz4":
		return CompressionLZ4, base
	default:
		return CompressionNone, path
	}
}

// NewReader wraps r with a decompressor for c.
// Closing the result releases decoder resources but not r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}
}

// NewWriter wraps w with a compressor for c.
// Close must be called to flush the stream; it does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return enc, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
