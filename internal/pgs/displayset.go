package pgs

// collects the payload fragments of one logical object within a display
// set; fragments concatenate in arrival order and the object is usable
// only once the fragment carrying the last-in-sequence flag arrived
type objectAccumulator struct {
	id       uint16
	version  uint8
	width    int
	height   int
	complete bool

	// fragment payloads stay views into the source buffer; they are
	// joined at most once, when the completed payload is first needed
	fragments [][]byte
	joined    []byte
}

func (a *objectAccumulator) add(frag *objectFragment) {
	a.fragments = append(a.fragments, frag.payload)
	if frag.last {
		a.complete = true
	}
}

// returns the concatenated payload and whether the object is complete
func (a *objectAccumulator) completedPayload() ([]byte, bool) {
	if !a.complete {
		return nil, false
	}
	if len(a.fragments) == 1 {
		return a.fragments[0], true
	}
	if a.joined == nil {
		total := 0
		for _, f := range a.fragments {
			total += len(f)
		}
		a.joined = make([]byte, 0, total)
		for _, f := range a.fragments {
			a.joined = append(a.joined, f...)
		}
	}
	return a.joined, true
}

// one subtitle presentation change: the composition plus the windows,
// palette and objects that arrived before its end marker
type displaySet struct {
	pts         uint32
	composition *composition
	windows     map[uint8]*windowDefinition
	objects     map[uint16]*objectAccumulator
	palette     *paletteDefinition
}

// groups segments into display sets. A composition segment opens a set
// (discarding any unterminated one), window/palette/object segments merge
// into the open set, and an end marker finalizes it. Segments outside an
// open set and unrecognized segment types are ignored.
type assembler struct {
	current *displaySet
	sets    []*displaySet
}

func newAssembler() *assembler {
	return &assembler{}
}

func (a *assembler) feed(h segmentHeader, body []byte) {
	switch h.kind {
	case compositionSegmentType:
		c, err := decodeCompositionSegment(body)
		if err != nil {
			return
		}
		a.current = &displaySet{
			pts:         h.pts,
			composition: c,
			windows:     make(map[uint8]*windowDefinition),
			objects:     make(map[uint16]*objectAccumulator),
		}
	case windowSegmentType:
		if a.current == nil {
			return
		}
		w, err := decodeWindowSegment(body)
		if err != nil {
			return
		}
		a.current.windows[w.id] = w
	case paletteSegmentType:
		if a.current == nil {
			return
		}
		p, err := decodePaletteSegment(body)
		if err != nil {
			return
		}
		a.current.palette = p
	case objectSegmentType:
		if a.current == nil {
			return
		}
		frag, err := decodeObjectSegment(body)
		if err != nil {
			return
		}
		acc := a.current.objects[frag.id]
		if frag.first || acc == nil {
			if !frag.first {
				// continuation without a first fragment, nothing to
				// append to
				return
			}
			acc = &objectAccumulator{
				id:      frag.id,
				version: frag.version,
				width:   frag.width,
				height:  frag.height,
			}
			a.current.objects[frag.id] = acc
		}
		acc.add(frag)
	case endSegmentType:
		if a.current == nil {
			return
		}
		a.sets = append(a.sets, a.current)
		a.current = nil
	}
}

// returns the finalized display sets; an unterminated open set is dropped
func (a *assembler) finish() []*displaySet {
	a.current = nil
	return a.sets
}
