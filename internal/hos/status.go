package hos

// DutyStatus is one of the four mutually exclusive driver states tracked on a
// regulatory log sheet.
type DutyStatus string

const (
	OffDuty          DutyStatus = "off_duty"
	SleeperBerth     DutyStatus = "sleeper_berth"
	Driving          DutyStatus = "driving"
	OnDutyNotDriving DutyStatus = "on_duty_not_driving"
)

// MinutesPerDay is the canonical day length for minute-encoded timelines.
const MinutesPerDay = 1440

// ParseStatus maps a stored status string onto a DutyStatus. Anything
// unrecognized (including the empty string) degrades to OffDuty.
func ParseStatus(s string) DutyStatus {
	switch DutyStatus(s) {
	case OffDuty, SleeperBerth, Driving, OnDutyNotDriving:
		return DutyStatus(s)
	default:
		return OffDuty
	}
}

// Valid reports whether s is one of the four known statuses.
func (s DutyStatus) Valid() bool {
	switch s {
	case OffDuty, SleeperBerth, Driving, OnDutyNotDriving:
		return true
	}
	return false
}

// Lane returns the 1-based grid row for the status. The order is the fixed
// layout of a paper log sheet: off duty on top, on duty not driving at the
// bottom.
func (s DutyStatus) Lane() int {
	switch s {
	case SleeperBerth:
		return 2
	case Driving:
		return 3
	case OnDutyNotDriving:
		return 4
	default:
		return 1
	}
}

// Color returns the render color for the status. The table is shared by the
// on-screen timeline and the exported report so both show identical lines.
func (s DutyStatus) Color() string {
	switch s {
	case SleeperBerth:
		return "#2196f3"
	case Driving:
		return "#f44336"
	case OnDutyNotDriving:
		return "#ff9800"
	default:
		return "#4caf50"
	}
}
