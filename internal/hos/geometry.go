package hos

// Line is one drawable primitive of a timeline: either a horizontal run along
// a status lane or a vertical connector between two lanes at a status change.
// Coordinates are in the target surface's pixel space; drawing them is the
// presentation layer's job.
type Line struct {
	Status DutyStatus `json:"status"`
	Color  string     `json:"color"`
	X1     float64    `json:"x1"`
	Y1     float64    `json:"y1"`
	X2     float64    `json:"x2"`
	Y2     float64    `json:"y2"`
}

// MapTimeline projects segments onto a width x height surface with the four
// fixed status lanes. Each segment yields a horizontal line at its lane
// height; consecutive segments of different status additionally yield a
// vertical connector at the shared boundary, colored for the incoming
// segment. Output depends only on the inputs.
func MapTimeline(segments []Segment, dayLength int, width, height float64) []Line {
	if dayLength <= 0 {
		dayLength = MinutesPerDay
	}

	lines := make([]Line, 0, 2*len(segments))
	for i, seg := range segments {
		y := laneY(seg.Status, height)
		x1 := timeX(seg.Start, dayLength, width)
		x2 := timeX(seg.End, dayLength, width)

		if i > 0 && segments[i-1].Status != seg.Status {
			lines = append(lines, Line{
				Status: seg.Status,
				Color:  seg.Status.Color(),
				X1:     x1,
				Y1:     laneY(segments[i-1].Status, height),
				X2:     x1,
				Y2:     y,
			})
		}

		lines = append(lines, Line{
			Status: seg.Status,
			Color:  seg.Status.Color(),
			X1:     x1,
			Y1:     y,
			X2:     x2,
			Y2:     y,
		})
	}
	return lines
}

func laneY(s DutyStatus, height float64) float64 {
	return float64(s.Lane()) / 4 * height
}

func timeX(t, dayLength int, width float64) float64 {
	return float64(t) / float64(dayLength) * width
}
