package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ASSFile struct {
	entries []Entry
}

// h:mm:ss.cc as used by ASS/SSA event lines
var assTimestampRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{2})$`)

// override tag blocks like {\pos(100,200)}
var assTagRegex = regexp.MustCompile(`\{[^}]*\}`)

func parseASSFile(path string) (*ASSFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ASS file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	inEventsSection := false
	var formatColumns []string
	startIdx, endIdx, textIdx := -1, -1, -1
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.ToLower(
				strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"),
			)
			inEventsSection = section == "events"
			continue
		}

		if !inEventsSection {
			continue
		}

		if strings.HasPrefix(trimmed, "Format:") {
			formatPart := strings.TrimPrefix(trimmed, "Format:")
			formatColumns = strings.Split(formatPart, ",")
			for i, col := range formatColumns {
				col = strings.TrimSpace(col)
				formatColumns[i] = col
				switch {
				case strings.EqualFold(col, "Start"):
					startIdx = i
				case strings.EqualFold(col, "End"):
					endIdx = i
				case strings.EqualFold(col, "Text"):
					textIdx = i
				}
			}
			if startIdx == -1 || endIdx == -1 || textIdx == -1 {
				return nil, fmt.Errorf(
					"ASS file missing Start, End or Text column in Format line",
				)
			}
			continue
		}

		if !strings.HasPrefix(trimmed, "Dialogue:") {
			continue
		}
		if len(formatColumns) == 0 {
			return nil, fmt.Errorf(
				"Dialogue before Format line at line %d", lineNum,
			)
		}

		fieldsPart := strings.TrimSpace(strings.TrimPrefix(trimmed, "Dialogue:"))
		// the Text column is last and may itself contain commas
		fields := strings.SplitN(fieldsPart, ",", len(formatColumns))
		if len(fields) < len(formatColumns) {
			return nil, fmt.Errorf(
				"malformed Dialogue at line %d: %d fields, want %d",
				lineNum, len(fields), len(formatColumns),
			)
		}

		startTime, err := parseASSTimestamp(strings.TrimSpace(fields[startIdx]))
		if err != nil {
			return nil, fmt.Errorf(
				"invalid start timestamp at line %d: %w", lineNum, err,
			)
		}
		endTime, err := parseASSTimestamp(strings.TrimSpace(fields[endIdx]))
		if err != nil {
			return nil, fmt.Errorf(
				"invalid end timestamp at line %d: %w", lineNum, err,
			)
		}

		entries = append(entries, Entry{
			Index:     len(entries) + 1,
			StartTime: startTime,
			EndTime:   endTime,
			Text:      cleanASSText(fields[textIdx]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASS file: %w", err)
	}

	return &ASSFile{entries: entries}, nil
}

func parseASSTimestamp(s string) (time.Duration, error) {
	matches := assTimestampRegex.FindStringSubmatch(s)
	if len(matches) != 5 {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}
	h, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, err
	}
	sec, err := strconv.Atoi(matches[3])
	if err != nil {
		return 0, err
	}
	cs, err := strconv.Atoi(matches[4])
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(cs)*10*time.Millisecond, nil
}

// strips override tags and converts ASS line breaks to newlines
func cleanASSText(text string) string {
	text = assTagRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\\N", "\n")
	text = strings.ReplaceAll(text, "\\n", "\n")
	return text
}

func (f *ASSFile) Format() Format {
	return FormatASS
}

func (f *ASSFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatASS),
	}
}

func (f *ASSFile) Write(path string) error {
	writer, err := NewWriter(FormatASS)
	if err != nil {
		return err
	}
	return writer.Write(f.Subtitle(), path)
}
