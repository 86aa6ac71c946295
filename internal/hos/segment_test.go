package hos

import "testing"

func assertTiles(t *testing.T, segments []Segment, dayLength int) {
	t.Helper()
	if len(segments) == 0 {
		t.Fatalf("no segments")
	}
	if segments[0].Start != 0 {
		t.Fatalf("first segment starts at %d, want 0", segments[0].Start)
	}
	if segments[len(segments)-1].End != dayLength {
		t.Fatalf("last segment ends at %d, want %d", segments[len(segments)-1].End, dayLength)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Start != segments[i-1].End {
			t.Fatalf("gap or overlap at segment %d: %d != %d", i, segments[i].Start, segments[i-1].End)
		}
	}
	for i, s := range segments {
		if s.Duration() <= 0 {
			t.Fatalf("segment %d has non-positive duration", i)
		}
	}
}

func TestBuildSegmentsEmpty(t *testing.T) {
	segments := BuildSegments(nil, MinutesPerDay)
	if len(segments) != 1 {
		t.Fatalf("expected one segment, got %d", len(segments))
	}
	if segments[0].Status != OffDuty || segments[0].Start != 0 || segments[0].End != MinutesPerDay {
		t.Fatalf("unexpected segment: %+v", segments[0])
	}
}

func TestBuildSegmentsWalk(t *testing.T) {
	events := []Event{
		{Time: 360, Status: Driving},
		{Time: 600, Status: OnDutyNotDriving},
		{Time: 660, Status: Driving},
		{Time: 1140, Status: SleeperBerth},
	}
	segments := BuildSegments(events, MinutesPerDay)
	assertTiles(t, segments, MinutesPerDay)

	want := []Segment{
		{0, 360, OffDuty},
		{360, 600, Driving},
		{600, 660, OnDutyNotDriving},
		{660, 1140, Driving},
		{1140, 1440, SleeperBerth},
	}
	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(segments), len(want))
	}
	for i, s := range segments {
		if s != want[i] {
			t.Fatalf("segment %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestBuildSegmentsUnsortedInput(t *testing.T) {
	events := []Event{
		{Time: 600, Status: OffDuty},
		{Time: 120, Status: Driving},
	}
	segments := BuildSegments(events, MinutesPerDay)
	assertTiles(t, segments, MinutesPerDay)
	if segments[1].Status != Driving || segments[1].Start != 120 || segments[1].End != 600 {
		t.Fatalf("unexpected middle segment: %+v", segments[1])
	}
}

func TestBuildSegmentsSameTimeLastWins(t *testing.T) {
	events := []Event{
		{Time: 480, Status: Driving},
		{Time: 480, Status: SleeperBerth},
	}
	segments := BuildSegments(events, MinutesPerDay)
	assertTiles(t, segments, MinutesPerDay)
	last := segments[len(segments)-1]
	if last.Status != SleeperBerth || last.Start != 480 {
		t.Fatalf("expected later event to win, got %+v", last)
	}
}

func TestBuildSegmentsEventAtZero(t *testing.T) {
	segments := BuildSegments([]Event{{Time: 0, Status: Driving}}, MinutesPerDay)
	if len(segments) != 1 || segments[0].Status != Driving {
		t.Fatalf("expected whole-day driving segment, got %+v", segments)
	}
	assertTiles(t, segments, MinutesPerDay)
}

func TestBuildSegmentsClampsOutOfRange(t *testing.T) {
	events := []Event{
		{Time: -30, Status: Driving},
		{Time: 2000, Status: SleeperBerth},
	}
	segments := BuildSegments(events, MinutesPerDay)
	assertTiles(t, segments, MinutesPerDay)
	if segments[0].Status != Driving {
		t.Fatalf("negative time should clamp to day start, got %+v", segments[0])
	}
	// The clamped trailing event is a zero-width split at the day boundary.
	if segments[len(segments)-1].Status != Driving {
		t.Fatalf("unexpected trailing segment: %+v", segments[len(segments)-1])
	}
}

func TestBuildSegmentsUnknownStatusFallsBack(t *testing.T) {
	segments := BuildSegments([]Event{{Time: 300, Status: "parked"}}, MinutesPerDay)
	assertTiles(t, segments, MinutesPerDay)
	if segments[len(segments)-1].Status != OffDuty {
		t.Fatalf("unknown status should degrade to off duty, got %+v", segments[len(segments)-1])
	}
}

func TestBuildSegmentsDefaultDayLength(t *testing.T) {
	segments := BuildSegments(nil, 0)
	if segments[0].End != MinutesPerDay {
		t.Fatalf("expected default day length, got %d", segments[0].End)
	}
}

func TestParseStatus(t *testing.T) {
	if got := ParseStatus("driving"); got != Driving {
		t.Fatalf("parse driving: %v", got)
	}
	if got := ParseStatus(""); got != OffDuty {
		t.Fatalf("empty status should default: %v", got)
	}
	if got := ParseStatus("bogus"); got != OffDuty {
		t.Fatalf("unknown status should default: %v", got)
	}
}
