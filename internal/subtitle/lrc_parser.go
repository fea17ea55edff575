package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

type LRCFile struct {
	entries []Entry
}

// [mm:ss.xx] or [mm:ss.xxx]; a line may carry several timestamps
var lrcTimestampRegex = regexp.MustCompile(`\[(\d{1,3}):(\d{2})\.(\d{2,3})\]`)

// [ar: ...], [ti: ...] and similar metadata tags
var lrcMetaRegex = regexp.MustCompile(`^\[[a-zA-Z#]+:.*\]$`)

// an LRC line has no end time; the lyric runs until the next one starts,
// and the last one gets a default duration
const lrcDefaultDuration = 5 * time.Second

func parseLRCFile(path string) (*LRCFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open LRC file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || lrcMetaRegex.MatchString(trimmed) {
			continue
		}

		matches := lrcTimestampRegex.FindAllStringSubmatch(trimmed, -1)
		if len(matches) == 0 {
			continue
		}
		text := strings.TrimSpace(lrcTimestampRegex.ReplaceAllString(trimmed, ""))
		if text == "" {
			continue
		}

		for _, m := range matches {
			start, err := parseLRCTimestamp(m[1], m[2], m[3])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid timestamp at line %d: %w", lineNum, err,
				)
			}
			entries = append(entries, Entry{
				StartTime: start,
				Text:      text,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading LRC file: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime < entries[j].StartTime
	})
	for i := range entries {
		entries[i].Index = i + 1
		if i+1 < len(entries) {
			entries[i].EndTime = entries[i+1].StartTime
		} else {
			entries[i].EndTime = entries[i].StartTime + lrcDefaultDuration
		}
	}

	return &LRCFile{entries: entries}, nil
}

func parseLRCTimestamp(minutes, seconds, fraction string) (time.Duration, error) {
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	f, err := strconv.Atoi(fraction)
	if err != nil {
		return 0, err
	}
	ms := f
	if len(fraction) == 2 {
		ms = f * 10
	}

	return time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

func (f *LRCFile) Format() Format {
	return FormatLRC
}

func (f *LRCFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatLRC),
	}
}

func (f *LRCFile) Write(path string) error {
	writer, err := NewWriter(FormatLRC)
	if err != nil {
		return err
	}
	return writer.Write(f.Subtitle(), path)
}
