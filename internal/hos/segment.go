package hos

import "sort"

// Event is one duty-status change inside a single day. Time is the minute
// since midnight at which the status begins.
type Event struct {
	Time   int        `json:"time"`
	Status DutyStatus `json:"status"`
}

// Segment is a maximal run [Start, End) of one duty status within a day.
// Segments are derived per render and never persisted.
type Segment struct {
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Status DutyStatus `json:"status"`
}

// Duration returns the segment length in the day's time units.
func (s Segment) Duration() int {
	return s.End - s.Start
}

// BuildSegments turns a sparse event sequence into contiguous segments that
// exactly tile [0, dayLength). The day opens off duty until the first event;
// each event closes the open segment and starts a new one; the last segment
// runs to the end of the day. Event times outside the day are clamped, events
// are sorted defensively (stable, so the later of two events at the same time
// wins), and unknown statuses fall back to off duty. The builder never fails.
func BuildSegments(events []Event, dayLength int) []Segment {
	if dayLength <= 0 {
		dayLength = MinutesPerDay
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	var segments []Segment
	open := Segment{Start: 0, Status: OffDuty}
	for _, ev := range sorted {
		t := clampMinute(ev.Time, dayLength)
		if t > open.Start {
			open.End = t
			segments = append(segments, open)
		}
		status := ev.Status
		if !status.Valid() {
			status = OffDuty
		}
		open = Segment{Start: t, Status: status}
	}

	open.End = dayLength
	if open.End > open.Start {
		segments = append(segments, open)
	}
	if len(segments) == 0 {
		segments = []Segment{{Start: 0, End: dayLength, Status: OffDuty}}
	}
	return segments
}

func clampMinute(t, dayLength int) int {
	if t < 0 {
		return 0
	}
	if t > dayLength {
		return dayLength
	}
	return t
}
