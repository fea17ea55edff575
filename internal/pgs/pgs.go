// Package pgs decodes and encodes Presentation Graphic Stream subtitles,
// the segment-based bitmap format used on Blu-ray discs (.sup files).
package pgs

import (
	"fmt"
	"os"

	"github.com/subtitlekit/subkit/internal/subtitle"
)

// parsed .sup file
type File struct {
	sub *subtitle.Subtitle
}

func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SUP file: %w", err)
	}
	return &File{sub: Decode(data)}, nil
}

func (f *File) Format() subtitle.Format {
	return subtitle.FormatSUP
}

func (f *File) Subtitle() *subtitle.Subtitle {
	return f.sub
}

func (f *File) Write(path string) error {
	data, err := Encode(f.sub)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// one entry of a segment-level stream listing
type SegmentInfo struct {
	Offset int
	PTS    uint32
	DTS    uint32
	Type   string
	Size   int
}

// Segments walks the raw segment structure of a PGS stream without
// assembling display sets; used for stream inspection.
func Segments(data []byte) []SegmentInfo {
	var infos []SegmentInfo
	off := 0
	for {
		h, ok := readSegmentHeader(data, off)
		if !ok {
			break
		}
		body := off + segmentHeaderSize
		if body+h.size > len(data) {
			break
		}
		infos = append(infos, SegmentInfo{
			Offset: off,
			PTS:    h.pts,
			DTS:    h.dts,
			Type:   segmentTypeName(h.kind),
			Size:   h.size,
		})
		off = body + h.size
	}
	return infos
}

func segmentTypeName(kind byte) string {
	switch kind {
	case paletteSegmentType:
		return "PDS"
	case objectSegmentType:
		return "ODS"
	case compositionSegmentType:
		return "PCS"
	case windowSegmentType:
		return "WDS"
	case endSegmentType:
		return "END"
	default:
		return fmt.Sprintf("0x%02X", kind)
	}
}
