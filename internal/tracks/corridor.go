package tracks

// Corridor names assigned to shared trackage.
const (
	CorridorLoop       = "Loop"
	CorridorNorthMain  = "North Main"
	CorridorSouthSide  = "South Side"
	CorridorForestPark = "Forest Park"
	CorridorWestSide   = "West Side"
	CorridorShared     = "Shared"
	CorridorUnknown    = "Unknown"
)

// loopLines are the lines that circle the elevated Loop.
var loopLines = [...]string{"Brown", "Green", "Orange", "Pink", "Purple"}

type corridorRule struct {
	corridor string
	matches  func(r *SegmentRecord) bool
}

// corridorRules are checked in order; the first match names the corridor.
var corridorRules = [...]corridorRule{
	{CorridorLoop, func(r *SegmentRecord) bool { return countLines(r, loopLines[:]...) >= 3 }},
	{CorridorNorthMain, func(r *SegmentRecord) bool { return hasAll(r, "Brown", "Purple") }},
	{CorridorSouthSide, func(r *SegmentRecord) bool { return hasAll(r, "Red", "Green") }},
	{CorridorForestPark, func(r *SegmentRecord) bool { return hasExactly(r, "Blue", "Pink") }},
	{CorridorWestSide, func(r *SegmentRecord) bool { return hasExactly(r, "Green", "Pink") }},
	{CorridorShared, func(r *SegmentRecord) bool { return r.LineCount() > 1 }},
}

// Corridor names the corridor a segment belongs to. A segment used by a
// single line that matches no rule takes that line's name.
func Corridor(r *SegmentRecord) string {
	for _, rule := range corridorRules {
		if rule.matches(r) {
			return rule.corridor
		}
	}
	if lines := r.Lines(); len(lines) == 1 {
		return lines[0]
	}
	return CorridorUnknown
}

func countLines(r *SegmentRecord, lines ...string) int {
	n := 0
	for _, line := range lines {
		if r.HasLine(line) {
			n++
		}
	}
	return n
}

func hasAll(r *SegmentRecord, lines ...string) bool {
	return countLines(r, lines...) == len(lines)
}

func hasExactly(r *SegmentRecord, lines ...string) bool {
	return r.LineCount() == len(lines) && hasAll(r, lines...)
}
