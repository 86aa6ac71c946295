package route

import (
	"fmt"
	"time"
)

// FMCSA property-carrying driver limits used for stop planning.
const (
	maxDrivingHrs            = 11.0
	maxOnDutyHrs             = 14.0
	maxCycleHrs              = 70.0
	breakDurationHrs         = 0.5
	maxDrivingBeforeBreakHrs = 8.0
	fuelStopDurationHrs      = 0.5
	maxDistanceBeforeFuelMi  = 1000.0
	pickupDropoffHrs         = 1.0
	overnightRestHrs         = 10.0
)

// PlanRestStops walks the route legs and inserts the stops a compliant driver
// would need: a 30-minute break after 8 hours of driving, a fuel stop every
// 1000 miles, and a 10-hour overnight reset when the daily driving or on-duty
// allowance cannot cover the remaining leg. The walk starts from the given
// trip start time so identical inputs plan identical stops.
func PlanRestStops(d Directions, currentCycleHours float64, start time.Time) []Stop {
	current := start
	remainingDrive := maxDrivingHrs
	remainingOnDuty := maxOnDutyHrs
	remainingCycle := maxCycleHrs - currentCycleHours
	timeSinceBreak := 0.0
	distanceSinceFuel := 0.0

	var stops []Stop
	for i, leg := range d.Legs {
		if i == 0 {
			// Loading at the pickup before any driving happens.
			current = current.Add(hoursDur(pickupDropoffHrs))
			remainingOnDuty -= pickupDropoffHrs
			remainingCycle -= pickupDropoffHrs
		}

		possibleDistance := leg.DistanceMi
		segTime := leg.DurationHrs

		for segTime > 0 {
			switch {
			case timeSinceBreak+segTime > maxDrivingBeforeBreakHrs:
				driveBefore := maxDrivingBeforeBreakHrs - timeSinceBreak
				distBefore := 0.0
				if leg.DurationHrs > 0 {
					distBefore = driveBefore / leg.DurationHrs * leg.DistanceMi
				}

				stops = append(stops, Stop{
					Name:             fmt.Sprintf("Rest Break %d", len(stops)+1),
					Type:             WaypointRest,
					Lat:              leg.StartLat,
					Lng:              leg.StartLng,
					EstimatedArrival: current.Add(hoursDur(driveBefore)),
					DurationHrs:      breakDurationHrs,
				})

				current = current.Add(hoursDur(driveBefore + breakDurationHrs))
				timeSinceBreak = 0
				remainingOnDuty -= driveBefore + breakDurationHrs
				remainingCycle -= driveBefore
				distanceSinceFuel += distBefore
				segTime -= driveBefore
				possibleDistance -= distBefore

			case distanceSinceFuel+possibleDistance > maxDistanceBeforeFuelMi:
				distBefore := maxDistanceBeforeFuelMi - distanceSinceFuel
				timeBefore := 0.0
				if possibleDistance > 0 {
					timeBefore = distBefore / possibleDistance * segTime
				}

				stops = append(stops, Stop{
					Name:             fmt.Sprintf("Fuel Stop %d", len(stops)+1),
					Type:             WaypointFuel,
					Lat:              leg.StartLat,
					Lng:              leg.StartLng,
					EstimatedArrival: current.Add(hoursDur(timeBefore)),
					DurationHrs:      fuelStopDurationHrs,
				})

				current = current.Add(hoursDur(timeBefore + fuelStopDurationHrs))
				timeSinceBreak += timeBefore
				remainingOnDuty -= timeBefore + fuelStopDurationHrs
				remainingCycle -= timeBefore + fuelStopDurationHrs
				distanceSinceFuel = 0
				segTime -= timeBefore
				possibleDistance -= distBefore

			case remainingOnDuty < segTime || remainingDrive < segTime:
				stops = append(stops, Stop{
					Name:             fmt.Sprintf("Overnight Rest %d", len(stops)+1),
					Type:             WaypointOvernight,
					Lat:              leg.StartLat,
					Lng:              leg.StartLng,
					EstimatedArrival: current,
					DurationHrs:      overnightRestHrs,
				})

				current = current.Add(hoursDur(overnightRestHrs))
				remainingDrive = maxDrivingHrs
				remainingOnDuty = maxOnDutyHrs
				timeSinceBreak = 0

			default:
				current = current.Add(hoursDur(segTime))
				timeSinceBreak += segTime
				remainingDrive -= segTime
				remainingOnDuty -= segTime
				remainingCycle -= segTime
				distanceSinceFuel += possibleDistance
				segTime = 0
			}
		}
	}

	return stops
}

func hoursDur(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
