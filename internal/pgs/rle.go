package pgs

// the run-length alphabet used by object payloads: a nonzero byte is a
// literal pixel, a zero byte escapes into run codes
//
//	0x00 0x00                 end of line
//	0x00 00LLLLLL             short transparent run
//	0x00 01LLLLLL LL CC       colored run
//	0x00 10LLLLLL LL          long transparent run
//	0x00 11LLLLLL LL CC       colored run (alternate bit layout)
const (
	runFlagMask   = 0xC0
	runLengthMask = 0x3F

	maxRunLength = 0x3FFF
)

// decompressRLE expands a run-length encoded object payload into a flat
// pixel buffer of width*height palette indices. The decoder is strictly
// linear: end-of-line markers are skipped without enforcing row structure,
// and it stops as soon as either the input or the output is exhausted.
func decompressRLE(data []byte, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]byte, width*height)
	pos := 0
	i := 0
	for i < len(data) && pos < len(out) {
		b := data[i]
		i++
		if b != 0 {
			out[pos] = b
			pos++
			continue
		}
		if i >= len(data) {
			break
		}
		flags := data[i]
		i++
		if flags == 0 {
			// end of line, no pixels
			continue
		}
		switch flags & runFlagMask {
		case 0x00:
			// short transparent run, buffer is pre-zeroed
			pos += int(flags & runLengthMask)
		case 0x80:
			if i >= len(data) {
				return out
			}
			pos += int(flags&runLengthMask)<<8 | int(data[i])
			i++
		default: // 0x40 and 0xC0 decode identically
			if i+1 >= len(data) {
				return out
			}
			n := int(flags&runLengthMask)<<8 | int(data[i])
			color := data[i+1]
			i += 2
			for ; n > 0 && pos < len(out); n-- {
				out[pos] = color
				pos++
			}
		}
	}
	return out
}

// compressRLE run-length encodes a flat pixel buffer, grouping identical
// consecutive palette indices greedily and picking the shortest code for
// each run. An end-of-line marker is emitted whenever the cumulative
// horizontal cursor reaches the row width; a run is never split at a row
// boundary, so the marker can land after a run that spans two rows. The
// decoder tolerates this since it ignores line structure.
func compressRLE(pixels []byte, width, height int) []byte {
	out := make([]byte, 0, len(pixels)/4+height*2)
	x := 0
	i := 0
	for i < len(pixels) {
		color := pixels[i]
		n := 1
		for i+n < len(pixels) && pixels[i+n] == color && n < maxRunLength {
			n++
		}
		i += n
		out = appendRun(out, color, n)
		x += n
		for x >= width {
			out = append(out, 0x00, 0x00)
			x -= width
		}
	}
	return out
}

func appendRun(out []byte, color byte, n int) []byte {
	if color == 0 {
		if n <= runLengthMask {
			return append(out, 0x00, byte(n))
		}
		return append(out, 0x00, 0x80|byte(n>>8), byte(n))
	}
	// a colored run code costs four bytes, literals win up to three
	if n <= 3 {
		for ; n > 0; n-- {
			out = append(out, color)
		}
		return out
	}
	return append(out, 0x00, 0x40|byte(n>>8), byte(n), color)
}
