package subtitle

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type TTMLFile struct {
	entries  []Entry
	language string
}

type ttmlDocument struct {
	XMLName xml.Name  `xml:"tt"`
	Lang    string    `xml:"lang,attr"`
	Cues    []ttmlCue `xml:"body>div>p"`
}

type ttmlCue struct {
	Begin string `xml:"begin,attr"`
	End   string `xml:"end,attr"`
	Dur   string `xml:"dur,attr"`
	// inner XML is kept raw since cues mix character data with span/br tags
	Body string `xml:",innerxml"`
}

var (
	ttmlClockRegex  = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})(?:[.,](\d{1,3}))?$`)
	ttmlOffsetRegex = regexp.MustCompile(`^(\d+(?:\.\d+)?)(h|m|s|ms)$`)
	ttmlBreakRegex  = regexp.MustCompile(`<br\s*/?>`)
	ttmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
)

func parseTTMLFile(path string) (*TTMLFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open TTML file: %w", err)
	}

	var doc ttmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TTML document: %w", err)
	}

	var entries []Entry
	for i, cue := range doc.Cues {
		begin, err := parseTTMLTime(cue.Begin)
		if err != nil {
			return nil, fmt.Errorf("cue %d: invalid begin time: %w", i+1, err)
		}
		var end time.Duration
		switch {
		case cue.End != "":
			end, err = parseTTMLTime(cue.End)
			if err != nil {
				return nil, fmt.Errorf("cue %d: invalid end time: %w", i+1, err)
			}
		case cue.Dur != "":
			dur, err := parseTTMLTime(cue.Dur)
			if err != nil {
				return nil, fmt.Errorf("cue %d: invalid dur: %w", i+1, err)
			}
			end = begin + dur
		default:
			return nil, fmt.Errorf("cue %d: neither end nor dur given", i+1)
		}

		text := cleanTTMLText(cue.Body)
		if text == "" {
			continue
		}
		entries = append(entries, Entry{
			Index:     len(entries) + 1,
			StartTime: begin,
			EndTime:   end,
			Text:      text,
		})
	}

	return &TTMLFile{entries: entries, language: doc.Lang}, nil
}

// accepts clock times (HH:MM:SS.mmm) and offset times (12.5s, 300ms)
func parseTTMLTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if m := ttmlClockRegex.FindStringSubmatch(s); m != nil {
		frac := m[4]
		if frac == "" {
			frac = "0"
		}
		for len(frac) < 3 {
			frac += "0"
		}
		return parseClockTimestamp(m[1], m[2], m[3], frac)
	}

	if m := ttmlOffsetRegex.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, err
		}
		switch m[2] {
		case "h":
			return time.Duration(v * float64(time.Hour)), nil
		case "m":
			return time.Duration(v * float64(time.Minute)), nil
		case "s":
			return time.Duration(v * float64(time.Second)), nil
		case "ms":
			return time.Duration(v * float64(time.Millisecond)), nil
		}
	}

	return 0, fmt.Errorf("malformed time expression %q", s)
}

func cleanTTMLText(body string) string {
	body = ttmlBreakRegex.ReplaceAllString(body, "\n")
	body = ttmlTagRegex.ReplaceAllString(body, "")

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text := strings.Join(lines, "\n")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	return strings.TrimSpace(text)
}

func (f *TTMLFile) Format() Format {
	return FormatTTML
}

func (f *TTMLFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries:  f.entries,
		Language: f.language,
		Format:   string(FormatTTML),
	}
}

func (f *TTMLFile) Write(path string) error {
	// no TTML writer; emit VTT which keeps cue styling closest
	writer, err := NewWriter(FormatVTT)
	if err != nil {
		return err
	}
	return writer.Write(f.Subtitle(), path)
}
