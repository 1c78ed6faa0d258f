package dataset

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		path string
		c    Compression
		base string
	}{
		{"a.csv", CompressionNone, "a.csv"},
		{"a.csv.gz", CompressionGzip, "a.csv"},
		{"dir/a.txt.ZST", CompressionZSTD, "dir/a.txt"},
		{"a.csv.zstd", CompressionZSTD, "a.csv"},
		{"a.txt.lz4", CompressionLZ4, "a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, base := DetectCompression(tt.path)
			assert.Equal(t, tt.c, c)
			assert.Equal(t, tt.base, base)
		})
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("1,0.5,0.25\n"), 1000)

	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, c)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if c != CompressionNone {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, c)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestCompression_Unsupported(t *testing.T) {
	_, err := NewReader(&bytes.Buffer{}, Compression(99))
	assert.Error(t, err)

	_, err = NewWriter(&bytes.Buffer{}, Compression(99))
	assert.Error(t, err)

	assert.Equal(t, "Unknown(99)", Compression(99).String())
}
