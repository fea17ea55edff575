package pgs

import (
	"encoding/binary"
	"fmt"

	"github.com/subtitlekit/subkit/internal/subtitle"
)

// one 5-byte palette definition entry: index, luma, chroma, alpha
type paletteEntry struct {
	index uint8
	y     uint8
	cr    uint8
	cb    uint8
	alpha uint8
}

// decoded palette definition segment
type paletteDefinition struct {
	id      uint8
	version uint8
	entries []paletteEntry
}

// decodes a palette definition segment body; entries repeat until the
// payload is exhausted and a repeated index overwrites the earlier entry
// when the table is built
func decodePaletteSegment(data []byte) (*paletteDefinition, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("palette segment too short: %d bytes", len(data))
	}
	p := &paletteDefinition{
		id:      data[0],
		version: data[1],
	}
	for off := 2; off+5 <= len(data); off += 5 {
		p.entries = append(p.entries, paletteEntry{
			index: data[off],
			y:     data[off+1],
			cr:    data[off+2],
			cb:    data[off+3],
			alpha: data[off+4],
		})
	}
	return p, nil
}

// sequence flags in the object definition segment
const (
	lastInSequence  = 0x40
	firstInSequence = 0x80
)

// one object definition segment, possibly a fragment of a larger object
type objectFragment struct {
	id      uint16
	version uint8
	first   bool
	last    bool

	// declared total payload length (24-bit), only on first fragments
	declaredLength int
	// zero on continuation fragments
	width  int
	height int

	// view into the source buffer, not a copy
	payload []byte
}

// decodes an object definition segment body; the payload slice aliases data
func decodeObjectSegment(data []byte) (*objectFragment, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("object segment too short: %d bytes", len(data))
	}
	frag := &objectFragment{
		id:      binary.BigEndian.Uint16(data),
		version: data[2],
		first:   data[3]&firstInSequence != 0,
		last:    data[3]&lastInSequence != 0,
	}
	if !frag.first {
		frag.payload = data[4:]
		return frag, nil
	}
	if len(data) < 11 {
		return nil, fmt.Errorf("first object fragment too short: %d bytes", len(data))
	}
	frag.declaredLength = int(data[4])<<16 | int(data[5])<<8 | int(data[6])
	frag.width = int(binary.BigEndian.Uint16(data[7:]))
	frag.height = int(binary.BigEndian.Uint16(data[9:]))
	frag.payload = data[11:]
	return frag, nil
}

// composition object flags
const (
	croppedFlag = 0x80
	forcedFlag  = 0x40
)

type cropRect struct {
	x      int
	y      int
	width  int
	height int
}

// ties a bitmap object to a screen position inside a window
type compositionObject struct {
	objectID uint16
	windowID uint8
	x        int
	y        int
	forced   bool
	cropped  bool
	crop     *cropRect
}

// decoded presentation composition segment
type composition struct {
	width         int
	height        int
	frameRate     uint8
	number        uint16
	state         uint8
	paletteUpdate bool
	paletteID     uint8
	objects       []compositionObject
}

// decodes a presentation composition segment body; a truncated object list
// is not an error, the already-decoded prefix is kept
func decodeCompositionSegment(data []byte) (*composition, error) {
	if len(data) < 11 {
		return nil, fmt.Errorf("composition segment too short: %d bytes", len(data))
	}
	c := &composition{
		width:         int(binary.BigEndian.Uint16(data)),
		height:        int(binary.BigEndian.Uint16(data[2:])),
		frameRate:     data[4],
		number:        binary.BigEndian.Uint16(data[5:]),
		state:         data[7],
		paletteUpdate: data[8]&0x80 != 0,
		paletteID:     data[9],
	}
	count := int(data[10])
	off := 11
	for i := 0; i < count; i++ {
		if off+8 > len(data) {
			break
		}
		obj := compositionObject{
			objectID: binary.BigEndian.Uint16(data[off:]),
			windowID: data[off+2],
			cropped:  data[off+3]&croppedFlag != 0,
			forced:   data[off+3]&forcedFlag != 0,
			x:        int(binary.BigEndian.Uint16(data[off+4:])),
			y:        int(binary.BigEndian.Uint16(data[off+6:])),
		}
		off += 8
		if obj.cropped {
			if off+8 > len(data) {
				break
			}
			obj.crop = &cropRect{
				x:      int(binary.BigEndian.Uint16(data[off:])),
				y:      int(binary.BigEndian.Uint16(data[off+2:])),
				width:  int(binary.BigEndian.Uint16(data[off+4:])),
				height: int(binary.BigEndian.Uint16(data[off+6:])),
			}
			off += 8
		}
		c.objects = append(c.objects, obj)
	}
	return c, nil
}

// clipping and placement region referenced by composition objects
type windowDefinition struct {
	id     uint8
	x      int
	y      int
	width  int
	height int
}

// decodes a window definition segment body; the record format carries a
// window count but only the first window is decoded
func decodeWindowSegment(data []byte) (*windowDefinition, error) {
	if len(data) < 10 {
		return nil, fmt.Errorf("window segment too short: %d bytes", len(data))
	}
	return &windowDefinition{
		id:     data[1],
		x:      int(binary.BigEndian.Uint16(data[2:])),
		y:      int(binary.BigEndian.Uint16(data[4:])),
		width:  int(binary.BigEndian.Uint16(data[6:])),
		height: int(binary.BigEndian.Uint16(data[8:])),
	}, nil
}

// Decode parses a PGS byte stream into the shared document model. Decoding
// is best-effort: truncated or malformed input yields whatever display sets
// were completely parsed, never an error.
func Decode(data []byte) *subtitle.Subtitle {
	asm := newAssembler()
	off := 0
	for {
		h, ok := readSegmentHeader(data, off)
		if !ok {
			break
		}
		body := off + segmentHeaderSize
		if body+h.size > len(data) {
			// declared payload exceeds the buffer, stop consuming
			break
		}
		asm.feed(h, data[body:body+h.size])
		off = body + h.size
	}
	return &subtitle.Subtitle{
		Entries: buildEvents(asm.finish()),
		Format:  string(subtitle.FormatSUP),
	}
}
