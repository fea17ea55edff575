package pgs

import (
	"encoding/binary"
)

// segment type codes from the PGS bitstream
const (
	paletteSegmentType     = 0x14 // PDS
	objectSegmentType      = 0x15 // ODS
	compositionSegmentType = 0x16 // PCS
	windowSegmentType      = 0x17 // WDS
	endSegmentType         = 0x80 // END
)

// every segment starts with a 13-byte header: "PG", pts, dts, type, size
const (
	magicByte0 = 'P'
	magicByte1 = 'G'

	segmentHeaderSize = 13
)

// PGS timestamps tick at 90 kHz
const clockRate = 90

// fixed preamble of one segment, read once and not retained
type segmentHeader struct {
	pts  uint32
	dts  uint32
	kind byte
	size int
}

// reads the segment header at off; reports false when the magic marker is
// absent or fewer than 13 bytes remain, which ends parsing
func readSegmentHeader(buf []byte, off int) (segmentHeader, bool) {
	if off < 0 || len(buf)-off < segmentHeaderSize {
		return segmentHeader{}, false
	}
	if buf[off] != magicByte0 || buf[off+1] != magicByte1 {
		return segmentHeader{}, false
	}
	return segmentHeader{
		pts:  binary.BigEndian.Uint32(buf[off+2:]),
		dts:  binary.BigEndian.Uint32(buf[off+6:]),
		kind: buf[off+10],
		size: int(binary.BigEndian.Uint16(buf[off+11:])),
	}, true
}

// appends a 13-byte segment header to out
func appendSegmentHeader(out []byte, pts, dts uint32, kind byte, size int) []byte {
	out = append(out, magicByte0, magicByte1)
	out = binary.BigEndian.AppendUint32(out, pts)
	out = binary.BigEndian.AppendUint32(out, dts)
	out = append(out, kind)
	out = binary.BigEndian.AppendUint16(out, uint16(size))
	return out
}
