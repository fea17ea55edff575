package pgs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtitlekit/subkit/internal/subtitle"
)

func TestFileRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "in.sup")
	outPath := filepath.Join(tmpDir, "out.sup")

	require.NoError(t, os.WriteFile(inPath, tinyDisplaySet(90000), 0644))

	file, err := Open(inPath)
	require.NoError(t, err)
	assert.Equal(t, subtitle.FormatSUP, file.Format())

	sub := file.Subtitle()
	require.Len(t, sub.Entries, 1)
	assert.Equal(t, time.Second, sub.Entries[0].StartTime)

	require.NoError(t, file.Write(outPath))

	reread, err := Open(outPath)
	require.NoError(t, err)
	require.Len(t, reread.Subtitle().Entries, 1)
	assert.Equal(t, sub.Entries[0].Image.Pixels,
		reread.Subtitle().Entries[0].Image.Pixels)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.sup"))
	assert.Error(t, err)
}
