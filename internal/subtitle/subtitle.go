package subtitle

import (
	"time"
)

// represents single subtitle entry; text formats fill Text,
// bitmap formats fill Image and leave Text empty
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
	Image     *Image
}

// represents positioned indexed bitmap carried by a bitmap subtitle entry
type Image struct {
	Width  int
	Height int
	X      int
	Y      int
	// one palette index per pixel, row-major, len = Width*Height
	Pixels []byte
	// 256 packed RGBA colors, missing palette entries are transparent black
	Palette [256]uint32

	// codec metadata preserved for re-encoding
	CompositionNumber uint16
	WindowID          uint8
}

// represents complete subtitle track
type Subtitle struct {
	Entries  []Entry
	Language string
	Format   string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatLRC  Format = "lrc"
	FormatSBV  Format = "sbv"
	FormatTTML Format = "ttml"
	FormatSUP  Format = "sup"
)

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}

// interface for parsing subtitle files
type Parser interface {
	Parse(path string) (*Subtitle, error)
}

// reports whether the entry carries a bitmap instead of text
func (e *Entry) IsBitmap() bool {
	return e.Image != nil
}
