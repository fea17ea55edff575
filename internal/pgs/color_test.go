package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYCbCrToRGBA(t *testing.T) {
	tests := []struct {
		name         string
		y, cb, cr, a uint8
		wantR, wantG uint32
		wantB, wantA uint32
	}{
		{name: "black opaque", y: 0, cb: 128, cr: 128, a: 255,
			wantR: 0, wantG: 0, wantB: 0, wantA: 255},
		{name: "white opaque", y: 255, cb: 128, cr: 128, a: 255,
			wantR: 255, wantG: 255, wantB: 255, wantA: 255},
		{name: "gray translucent", y: 128, cb: 128, cr: 128, a: 100,
			wantR: 128, wantG: 128, wantB: 128, wantA: 100},
		{name: "clamped red", y: 255, cb: 0, cr: 255, a: 255,
			wantR: 255, wantG: 208, wantB: 28, wantA: 255},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := ycbcrToRGBA(test.y, test.cb, test.cr, test.a)
			assert.Equal(t, test.wantR, c>>24&0xFF, "red")
			assert.Equal(t, test.wantG, c>>16&0xFF, "green")
			assert.Equal(t, test.wantB, c>>8&0xFF, "blue")
			assert.Equal(t, test.wantA, c&0xFF, "alpha")
		})
	}
}

// alpha must survive exactly and RGB within rounding tolerance
func TestColorRoundTrip(t *testing.T) {
	colors := []uint32{
		0x000000FF, // opaque black
		0xFFFFFFFF, // opaque white
		0xFF0000FF,
		0x00FF00FF,
		0x0000FFFF,
		0x80808080,
		0x123456E0,
		0xC0FFEE00, // fully transparent
	}

	for _, c := range colors {
		y, cb, cr, alpha := rgbaToYCbCr(c)
		back := ycbcrToRGBA(y, cb, cr, alpha)

		assert.Equal(t, c&0xFF, back&0xFF, "alpha of %08x", c)
		assert.InDelta(t, float64(c>>24&0xFF), float64(back>>24&0xFF), 2, "red of %08x", c)
		assert.InDelta(t, float64(c>>16&0xFF), float64(back>>16&0xFF), 2, "green of %08x", c)
		assert.InDelta(t, float64(c>>8&0xFF), float64(back>>8&0xFF), 2, "blue of %08x", c)
	}
}

func TestBuildPalette(t *testing.T) {
	t.Run("nil palette is fully transparent", func(t *testing.T) {
		table := buildPalette(nil)
		for i, c := range table {
			assert.Zero(t, c, "entry %d", i)
		}
	})

	t.Run("missing entries default to transparent black", func(t *testing.T) {
		table := buildPalette(&paletteDefinition{
			entries: []paletteEntry{
				{index: 3, y: 255, cr: 128, cb: 128, alpha: 255},
			},
		})
		assert.Equal(t, uint32(0xFFFFFFFF), table[3])
		assert.Zero(t, table[0])
		assert.Zero(t, table[255])
	})

	t.Run("repeated index keeps the last definition", func(t *testing.T) {
		table := buildPalette(&paletteDefinition{
			entries: []paletteEntry{
				{index: 5, y: 255, cr: 128, cb: 128, alpha: 255},
				{index: 5, y: 0, cr: 128, cb: 128, alpha: 255},
			},
		})
		assert.Equal(t, uint32(0x000000FF), table[5])
	})
}
