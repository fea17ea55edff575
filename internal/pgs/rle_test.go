package pgs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rleDecodeCase struct {
	name   string
	input  []byte
	width  int
	height int
	want   []byte
}

func TestDecompressRLE(t *testing.T) {
	tests := []rleDecodeCase{
		{
			name:   "literals with end of line",
			input:  []byte{0x01, 0x01, 0x01, 0x00, 0x00},
			width:  3,
			height: 1,
			want:   []byte{1, 1, 1},
		},
		{
			name:   "short transparent run",
			input:  []byte{0x00, 0x04, 0x00, 0x00},
			width:  4,
			height: 1,
			want:   []byte{0, 0, 0, 0},
		},
		{
			name:   "colored run",
			input:  []byte{0x00, 0x40, 0x05, 0x07},
			width:  5,
			height: 1,
			want:   []byte{7, 7, 7, 7, 7},
		},
		{
			name:   "colored run alternate bit layout",
			input:  []byte{0x00, 0xC0, 0x05, 0x07},
			width:  5,
			height: 1,
			want:   []byte{7, 7, 7, 7, 7},
		},
		{
			name:   "long transparent run",
			input:  []byte{0x00, 0x81, 0x00},
			width:  256,
			height: 1,
			want:   make([]byte, 256),
		},
		{
			name:   "mixed literals and runs across rows",
			input:  []byte{0x05, 0x00, 0x02, 0x09, 0x00, 0x00, 0x00, 0x40, 0x04, 0x03},
			width:  4,
			height: 2,
			want:   []byte{5, 0, 0, 9, 3, 3, 3, 3},
		},
		{
			name:   "truncated run code",
			input:  []byte{0x02, 0x00, 0x40},
			width:  2,
			height: 1,
			want:   []byte{2, 0},
		},
		{
			name:   "output exhausted before input",
			input:  []byte{0x00, 0x40, 0x10, 0x06},
			width:  4,
			height: 1,
			want:   []byte{6, 6, 6, 6},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := decompressRLE(test.input, test.width, test.height)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCompressRLE(t *testing.T) {
	t.Run("short literals", func(t *testing.T) {
		got := compressRLE([]byte{1, 1, 1}, 3, 1)
		assert.Equal(t, []byte{0x01, 0x01, 0x01, 0x00, 0x00}, got)
	})

	t.Run("transparent row", func(t *testing.T) {
		got := compressRLE([]byte{0, 0, 0, 0}, 4, 1)
		assert.Equal(t, []byte{0x00, 0x04, 0x00, 0x00}, got)
	})

	t.Run("colored run beats literals above three", func(t *testing.T) {
		got := compressRLE([]byte{7, 7, 7, 7, 7}, 5, 1)
		assert.Equal(t, []byte{0x00, 0x40, 0x05, 0x07, 0x00, 0x00}, got)
	})

	t.Run("run spanning two rows is not split", func(t *testing.T) {
		// the single run crosses the row boundary, so both end-of-line
		// markers trail the run instead of bracketing the rows
		got := compressRLE([]byte{9, 9, 9, 9}, 2, 2)
		assert.Equal(t, []byte{0x00, 0x40, 0x04, 0x09, 0x00, 0x00, 0x00, 0x00}, got)
	})

	t.Run("long transparent run", func(t *testing.T) {
		got := compressRLE(make([]byte, 300), 300, 1)
		assert.Equal(t, []byte{0x00, 0x80 | 0x01, 0x2C, 0x00, 0x00}, got)
	})
}

func TestRLERoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		pixels func() []byte
	}{
		{
			name: "all transparent", width: 64, height: 32,
			pixels: func() []byte { return make([]byte, 64*32) },
		},
		{
			name: "single long run", width: 100, height: 10,
			pixels: func() []byte { return bytes.Repeat([]byte{42}, 1000) },
		},
		{
			name: "striped rows", width: 16, height: 8,
			pixels: func() []byte {
				px := make([]byte, 16*8)
				for y := 0; y < 8; y++ {
					for x := 0; x < 16; x++ {
						px[y*16+x] = byte(y % 3)
					}
				}
				return px
			},
		},
		{
			name: "no runs at all", width: 8, height: 4,
			pixels: func() []byte {
				px := make([]byte, 32)
				for i := range px {
					px[i] = byte(i%254) + 1
				}
				return px
			},
		},
		{
			name: "run longer than the 14-bit cap", width: 200, height: 100,
			pixels: func() []byte { return bytes.Repeat([]byte{7}, 20000) },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pixels := test.pixels()
			compressed := compressRLE(pixels, test.width, test.height)
			got := decompressRLE(compressed, test.width, test.height)
			require.Equal(t, pixels, got)
		})
	}
}
