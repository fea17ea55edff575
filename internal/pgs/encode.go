package pgs

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/multierr"

	"github.com/subtitlekit/subkit/internal/subtitle"
)

// a segment payload is at most 64 KiB; object payloads larger than that
// are split into fragments
const (
	maxSegmentSize       = 0xFFFF
	firstFragmentHeader  = 11
	secondFragmentHeader = 4

	// epoch start, every emitted display set is self-contained
	epochStart = 0x80
)

// EncodeOptions carries the stream-level fields that are not part of the
// document model.
type EncodeOptions struct {
	Width     int
	Height    int
	FrameRate uint8
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Width: 1920, Height: 1080, FrameRate: 0x10}
}

// Encode serializes the bitmap entries of a subtitle into a PGS byte
// stream with default options. Entries without an image are skipped.
func Encode(sub *subtitle.Subtitle) ([]byte, error) {
	return EncodeWithOptions(sub, DefaultEncodeOptions())
}

// EncodeWithOptions serializes the bitmap entries of a subtitle into a PGS
// byte stream. Each entry becomes one display set (composition, window,
// palette, object fragments, end marker); a clear display set is emitted at
// an entry's end time unless the next entry starts right there. Encoding
// fails, before any output is produced, if an entry's image data is
// internally inconsistent.
func EncodeWithOptions(sub *subtitle.Subtitle, opts EncodeOptions) ([]byte, error) {
	var images []*subtitle.Image
	var starts, ends []uint32
	var err error
	for i := range sub.Entries {
		e := &sub.Entries[i]
		if e.Image == nil {
			continue
		}
		if vErr := validateImage(i, e.Image); vErr != nil {
			err = multierr.Append(err, vErr)
			continue
		}
		images = append(images, e.Image)
		starts = append(starts, durationToPTS(e.StartTime))
		ends = append(ends, durationToPTS(e.EndTime))
	}
	if err != nil {
		return nil, err
	}

	var out []byte
	var compositionNumber uint16
	var lastPalette *[256]uint32
	for i, img := range images {
		pts := starts[i]
		out = appendCompositionSegment(out, pts, opts, compositionNumber, img)
		compositionNumber++
		out = appendWindowSegment(out, pts, img)
		if lastPalette == nil || *lastPalette != img.Palette {
			out = appendPaletteSegment(out, pts, img.Palette)
			lastPalette = &img.Palette
		}
		out = appendObjectSegments(out, pts, img)
		out = appendSegmentHeader(out, pts, 0, endSegmentType, 0)

		// hide the subtitle at its end time unless the next one
		// replaces it at that exact moment
		if i+1 == len(images) || starts[i+1] != ends[i] {
			out = appendClearSet(out, ends[i], opts, compositionNumber)
			compositionNumber++
		}
	}
	return out, nil
}

func validateImage(index int, img *subtitle.Image) error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("entry %d: invalid image dimensions %dx%d",
			index, img.Width, img.Height)
	}
	if len(img.Pixels) != img.Width*img.Height {
		return fmt.Errorf("entry %d: pixel buffer is %d bytes, want %d for %dx%d",
			index, len(img.Pixels), img.Width*img.Height, img.Width, img.Height)
	}
	return nil
}

func appendCompositionSegment(out []byte, pts uint32, opts EncodeOptions, number uint16, img *subtitle.Image) []byte {
	out = appendSegmentHeader(out, pts, 0, compositionSegmentType, 11+8)
	out = binary.BigEndian.AppendUint16(out, uint16(opts.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(opts.Height))
	out = append(out, opts.FrameRate)
	out = binary.BigEndian.AppendUint16(out, number)
	out = append(out, epochStart, 0x00, 0x00, 1)
	// single composition object, uncropped and unforced
	out = binary.BigEndian.AppendUint16(out, 0) // object id
	out = append(out, img.WindowID, 0x00)
	out = binary.BigEndian.AppendUint16(out, uint16(img.X))
	out = binary.BigEndian.AppendUint16(out, uint16(img.Y))
	return out
}

func appendClearSet(out []byte, pts uint32, opts EncodeOptions, number uint16) []byte {
	out = appendSegmentHeader(out, pts, 0, compositionSegmentType, 11)
	out = binary.BigEndian.AppendUint16(out, uint16(opts.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(opts.Height))
	out = append(out, opts.FrameRate)
	out = binary.BigEndian.AppendUint16(out, number)
	out = append(out, 0x00, 0x00, 0x00, 0)
	out = appendSegmentHeader(out, pts, 0, endSegmentType, 0)
	return out
}

func appendWindowSegment(out []byte, pts uint32, img *subtitle.Image) []byte {
	out = appendSegmentHeader(out, pts, 0, windowSegmentType, 10)
	out = append(out, 1, img.WindowID)
	out = binary.BigEndian.AppendUint16(out, uint16(img.X))
	out = binary.BigEndian.AppendUint16(out, uint16(img.Y))
	out = binary.BigEndian.AppendUint16(out, uint16(img.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(img.Height))
	return out
}

func appendPaletteSegment(out []byte, pts uint32, palette [256]uint32) []byte {
	out = appendSegmentHeader(out, pts, 0, paletteSegmentType, 2+256*5)
	out = append(out, 0, 0) // palette id, version
	for i, c := range palette {
		y, cb, cr, alpha := rgbaToYCbCr(c)
		out = append(out, byte(i), y, cr, cb, alpha)
	}
	return out
}

func appendObjectSegments(out []byte, pts uint32, img *subtitle.Image) []byte {
	rle := compressRLE(img.Pixels, img.Width, img.Height)
	declared := len(rle) + 4 // width and height count toward the total

	first := rle
	var rest []byte
	if firstFragmentHeader+len(rle) > maxSegmentSize {
		first = rle[:maxSegmentSize-firstFragmentHeader]
		rest = rle[maxSegmentSize-firstFragmentHeader:]
	}

	flags := byte(firstInSequence)
	if rest == nil {
		flags |= lastInSequence
	}
	out = appendSegmentHeader(out, pts, 0, objectSegmentType, firstFragmentHeader+len(first))
	out = binary.BigEndian.AppendUint16(out, 0) // object id
	out = append(out, 0, flags)                 // version, sequence flags
	out = append(out, byte(declared>>16), byte(declared>>8), byte(declared))
	out = binary.BigEndian.AppendUint16(out, uint16(img.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(img.Height))
	out = append(out, first...)

	for len(rest) > 0 {
		chunk := rest
		if secondFragmentHeader+len(chunk) > maxSegmentSize {
			chunk = rest[:maxSegmentSize-secondFragmentHeader]
		}
		rest = rest[len(chunk):]
		flags = 0
		if len(rest) == 0 {
			flags = lastInSequence
		}
		out = appendSegmentHeader(out, pts, 0, objectSegmentType, secondFragmentHeader+len(chunk))
		out = binary.BigEndian.AppendUint16(out, 0)
		out = append(out, 0, flags)
		out = append(out, chunk...)
	}
	return out
}
