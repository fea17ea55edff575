package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleSubtitle() *Subtitle {
	return &Subtitle{
		Entries: []Entry{
			{
				Index:     1,
				StartTime: 1 * time.Second,
				EndTime:   4 * time.Second,
				Text:      "Hello, world!",
			},
			{
				Index:     2,
				StartTime: 5*time.Second + 500*time.Millisecond,
				EndTime:   8 * time.Second,
				Text:      "Two\nlines",
			},
		},
		Format: string(FormatSRT),
	}
}

func TestSRTWriteRoundTrip(t *testing.T) {
	sub := sampleSubtitle()
	path := filepath.Join(t.TempDir(), "out.srt")

	writer, err := NewWriter(FormatSRT)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(sub, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen written file: %v", err)
	}
	got := file.Subtitle()
	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Entries))
	}
	for i := range got.Entries {
		if got.Entries[i].StartTime != sub.Entries[i].StartTime {
			t.Errorf(
				"entry %d: start %v, want %v",
				i,
				got.Entries[i].StartTime,
				sub.Entries[i].StartTime,
			)
		}
		if got.Entries[i].Text != sub.Entries[i].Text {
			t.Errorf(
				"entry %d: text %q, want %q",
				i,
				got.Entries[i].Text,
				sub.Entries[i].Text,
			)
		}
	}
}

func TestVTTWriteHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vtt")

	writer, err := NewWriter(FormatVTT)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(sampleSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(content), "WEBVTT\n") {
		t.Error("VTT output missing WEBVTT header")
	}
}

func TestLRCWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.lrc")

	writer, err := NewWriter(FormatLRC)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(sampleSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(content), "[00:01.00]Hello, world!") {
		t.Errorf("unexpected LRC output:\n%s", content)
	}
	// multi-line text collapses to one line
	if !strings.Contains(string(content), "[00:05.50]Two lines") {
		t.Errorf("unexpected LRC output:\n%s", content)
	}
}

func TestTextWritersSkipBitmapEntries(t *testing.T) {
	sub := sampleSubtitle()
	sub.Entries = append(sub.Entries, Entry{
		Index:     3,
		StartTime: 10 * time.Second,
		EndTime:   12 * time.Second,
		Image:     &Image{Width: 2, Height: 2, Pixels: []byte{1, 1, 1, 1}},
	})

	path := filepath.Join(t.TempDir(), "out.srt")
	writer, err := NewWriter(FormatSRT)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(sub, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen written file: %v", err)
	}
	if got := len(file.Subtitle().Entries); got != 2 {
		t.Errorf("expected bitmap entry skipped, got %d entries", got)
	}
}

func TestASSWriteEscapesNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ass")

	writer, err := NewWriter(FormatASS)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(sampleSubtitle(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(content), "Two\\Nlines") {
		t.Errorf("ASS output missing escaped newline:\n%s", content)
	}
}
