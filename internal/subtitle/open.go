package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// parsed subtitle file
type File interface {
	Format() Format
	Subtitle() *Subtitle
	Write(path string) error
}

// Open parses a text subtitle file, picking the parser from the file
// extension. Bitmap formats (.sup) live in the pgs package.
func Open(path string) (File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return parseSRTFile(path)
	case ".vtt":
		return parseVTTFile(path)
	case ".ass", ".ssa":
		return parseASSFile(path)
	case ".lrc":
		return parseLRCFile(path)
	case ".sbv":
		return parseSBVFile(path)
	case ".ttml", ".dfxp", ".xml":
		return parseTTMLFile(path)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}
