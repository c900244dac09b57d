package tracks

import (
	"sort"

	"github.com/paulmach/orb"
)

// SegmentRecord accumulates every line that produced a given SegmentKey.
type SegmentRecord struct {
	Key string
	// Coords is the first pair written for Key, lower point first.
	Coords orb.LineString
	lines  map[string]struct{}
}

// HasLine reports whether line traverses the segment.
func (r *SegmentRecord) HasLine(line string) bool {
	_, ok := r.lines[line]
	return ok
}

// LineCount returns the number of distinct lines on the segment.
func (r *SegmentRecord) LineCount() int {
	return len(r.lines)
}

// Lines returns the distinct line names, sorted.
func (r *SegmentRecord) Lines() []string {
	out := make([]string, 0, len(r.lines))
	for line := range r.lines {
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

// Segments is the ordered set of unique segments built by one pipeline run.
// Records keep first-insertion order.
type Segments struct {
	order   []*SegmentRecord
	records map[string]*SegmentRecord
}

// NewSegments returns an empty accumulator.
func NewSegments() *Segments {
	return &Segments{records: map[string]*SegmentRecord{}}
}

// Add records that line traverses p→q. The first caller for a key fixes its
// coordinates; later callers only add their line. It reports whether the key
// was new.
func (s *Segments) Add(p, q orb.Point, line string) bool {
	key := SegmentKey(p, q)
	if rec, ok := s.records[key]; ok {
		rec.lines[line] = struct{}{}
		return false
	}

	if !pointLess(p, q) {
		p, q = q, p
	}
	rec := &SegmentRecord{
		Key:    key,
		Coords: orb.LineString{p, q},
		lines:  map[string]struct{}{line: {}},
	}
	s.records[key] = rec
	s.order = append(s.order, rec)
	return true
}

// Len returns the number of unique segments.
func (s *Segments) Len() int {
	return len(s.order)
}

// Get returns the record for key.
func (s *Segments) Get(key string) (*SegmentRecord, bool) {
	rec, ok := s.records[key]
	return rec, ok
}

// Records returns the segments in insertion order.
func (s *Segments) Records() []*SegmentRecord {
	return s.order
}
