package pgs

import (
	"math"
	"time"

	"github.com/subtitlekit/subkit/internal/subtitle"
)

// a subtitle with no successor stays visible this long
const defaultDuration = 5000 * time.Millisecond

// buildEvents turns the ordered display sets into document entries. Each
// set with visible composition objects emits one entry per object; its end
// time is the next set's timestamp, whether or not that set shows anything
// (an empty "clear" composition emits nothing but still terminates the
// previous subtitle). A palette definition stays in effect until the next
// one arrives, so a set without its own palette segment renders with the
// last seen palette.
func buildEvents(sets []*displaySet) []subtitle.Entry {
	var entries []subtitle.Entry
	var lastPalette *paletteDefinition
	for i, ds := range sets {
		if ds.palette != nil {
			lastPalette = ds.palette
		}
		if ds.composition == nil || len(ds.composition.objects) == 0 {
			continue
		}
		start := ptsToDuration(ds.pts)
		var end time.Duration
		if i+1 < len(sets) {
			end = ptsToDuration(sets[i+1].pts)
		} else {
			end = start + defaultDuration
		}
		palette := buildPalette(lastPalette)
		for _, obj := range ds.composition.objects {
			acc := ds.objects[obj.objectID]
			if acc == nil {
				continue
			}
			payload, ok := acc.completedPayload()
			if !ok || acc.width <= 0 || acc.height <= 0 {
				continue
			}
			// crop rectangles are parsed but deliberately not applied;
			// the full object dimensions are always used
			entries = append(entries, subtitle.Entry{
				Index:     len(entries) + 1,
				StartTime: start,
				EndTime:   end,
				Image: &subtitle.Image{
					Width:             acc.width,
					Height:            acc.height,
					X:                 obj.x,
					Y:                 obj.y,
					Pixels:            decompressRLE(payload, acc.width, acc.height),
					Palette:           palette,
					CompositionNumber: ds.composition.number,
					WindowID:          obj.windowID,
				},
			})
		}
	}
	return entries
}

func ptsToDuration(pts uint32) time.Duration {
	ms := int64(math.Round(float64(pts) / clockRate))
	return time.Duration(ms) * time.Millisecond
}

func durationToPTS(d time.Duration) uint32 {
	return uint32(d.Milliseconds() * clockRate)
}
