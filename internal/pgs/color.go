package pgs

import "math"

// palette colors travel as ITU-R BT.601 luma/chroma plus alpha and are
// exposed to the document model as packed 32-bit RGBA

func ycbcrToRGBA(y, cb, cr, alpha uint8) uint32 {
	yf := float64(y)
	cbf := float64(cb) - 128
	crf := float64(cr) - 128

	r := clamp255(math.Round(yf + 1.402*crf))
	g := clamp255(math.Round(yf - 0.344136*cbf - 0.714136*crf))
	b := clamp255(math.Round(yf + 1.772*cbf))

	return r<<24 | g<<16 | b<<8 | uint32(alpha)
}

func rgbaToYCbCr(c uint32) (y, cb, cr, alpha uint8) {
	r := float64(c >> 24 & 0xFF)
	g := float64(c >> 16 & 0xFF)
	b := float64(c >> 8 & 0xFF)

	y = uint8(clamp255(math.Round(0.299*r + 0.587*g + 0.114*b)))
	cb = uint8(clamp255(math.Round(128 - 0.168736*r - 0.331264*g + 0.5*b)))
	cr = uint8(clamp255(math.Round(128 + 0.5*r - 0.418688*g - 0.081312*b)))
	alpha = uint8(c & 0xFF)
	return
}

func clamp255(v float64) uint32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v)
}

// buildPalette converts a palette definition into the fixed 256-entry
// direct-color table. Indices without an entry stay fully transparent
// black; a repeated index keeps the last definition. A nil palette yields
// an all-transparent table.
func buildPalette(p *paletteDefinition) [256]uint32 {
	var table [256]uint32
	if p == nil {
		return table
	}
	for _, e := range p.entries {
		table[e.index] = ycbcrToRGBA(e.y, e.cb, e.cr, e.alpha)
	}
	return table
}
