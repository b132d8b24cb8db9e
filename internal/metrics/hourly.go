package metrics

import (
	"slices"

	"github.com/skyward-analytics/flightpulse/internal/schedule"
	"github.com/skyward-analytics/flightpulse/pkg/alg/stats"
)

// hoursPerDay fixes the hourly table at 24 slots, hour 0 through 23.
const hoursPerDay = 24

// peakSeparationHours is the minimum spacing between two flagged peaks.
const peakSeparationHours = 3

// HourlySlot is one hour of combined traffic. Hours without flights carry
// zero counts and zero delay, never nulls.
type HourlySlot struct {
	ScheduledHour        int     `json:"scheduled_hour"`
	NumArrivals          int     `json:"num_arrivals"`
	AvgArrivalDelayMin   float64 `json:"avg_arrival_delay_min"`
	NumDepartures        int     `json:"num_departures"`
	AvgDepartureDelayMin float64 `json:"avg_departure_delay_min"`
	TotalFlights         int     `json:"total_flights"`
	HourHHMM             string  `json:"hour_hh_mm"`
}

// PeakSlot is an hourly slot annotated with the series means and the peak
// flags of both directions.
type PeakSlot struct {
	HourlySlot

	AvgArrivals    float64 `json:"avg_arrivals"`
	ArrivalsPeak   bool    `json:"arrivals_peak"`
	AvgDepartures  float64 `json:"avg_departures"`
	DeparturesPeak bool    `json:"departures_peak"`
}

// ComputeHourly buckets both directions into 24 hourly slots. Per slot the
// delay average covers only rows with a recorded delay, divided by 60 and
// rounded to 2 decimals.
func ComputeHourly(arrivals, departures []schedule.Flight) []HourlySlot {
	var (
		arrCount, depCount       [hoursPerDay]int
		arrDelaySum, depDelaySum [hoursPerDay]float64
		arrDelayN, depDelayN     [hoursPerDay]int
	)

	for _, f := range arrivals {
		h := f.ScheduledHour
		arrCount[h]++

		if f.ArrivalDelay != nil {
			arrDelaySum[h] += float64(*f.ArrivalDelay)
			arrDelayN[h]++
		}
	}

	for _, f := range departures {
		h := f.ScheduledHour
		depCount[h]++

		if f.DepartureDelay != nil {
			depDelaySum[h] += float64(*f.DepartureDelay)
			depDelayN[h]++
		}
	}

	slots := make([]HourlySlot, hoursPerDay)

	for h := range hoursPerDay {
		slot := HourlySlot{
			ScheduledHour: h,
			NumArrivals:   arrCount[h],
			NumDepartures: depCount[h],
			TotalFlights:  arrCount[h] + depCount[h],
			HourHHMM:      minutesToHHMM(float64(h * 60)),
		}

		if arrDelayN[h] > 0 {
			slot.AvgArrivalDelayMin = stats.Round(arrDelaySum[h]/float64(arrDelayN[h])/60, 2)
		}

		if depDelayN[h] > 0 {
			slot.AvgDepartureDelayMin = stats.Round(depDelaySum[h]/float64(depDelayN[h])/60, 2)
		}

		slots[h] = slot
	}

	return slots
}

// ComputePeaks annotates hourly slots with peak flags per direction. An
// hour is flagged when it is a separated local maximum of its series and
// its count strictly exceeds the series mean. A flat series has no local
// maxima and an all-zero series has mean zero, so neither produces flags.
func ComputePeaks(slots []HourlySlot) []PeakSlot {
	arrCounts := make([]float64, len(slots))
	depCounts := make([]float64, len(slots))

	for i, s := range slots {
		arrCounts[i] = float64(s.NumArrivals)
		depCounts[i] = float64(s.NumDepartures)
	}

	arrMean := stats.Mean(arrCounts)
	depMean := stats.Mean(depCounts)
	arrPeaks := detectPeaks(arrCounts)
	depPeaks := detectPeaks(depCounts)

	annotated := make([]PeakSlot, len(slots))

	for i, s := range slots {
		annotated[i] = PeakSlot{
			HourlySlot:     s,
			AvgArrivals:    stats.Round(arrMean, 2),
			ArrivalsPeak:   arrPeaks[i] && arrCounts[i] > arrMean,
			AvgDepartures:  stats.Round(depMean, 2),
			DeparturesPeak: depPeaks[i] && depCounts[i] > depMean,
		}
	}

	return annotated
}

// detectPeaks marks separated strict local maxima. A candidate must be
// strictly greater than both neighbors (one neighbor at the endpoints).
// Candidates are then visited by count descending, hour ascending, and one
// is kept only when no kept peak lies within peakSeparationHours.
func detectPeaks(counts []float64) []bool {
	n := len(counts)

	var candidates []int

	for i := range n {
		leftOK := i == 0 || counts[i] > counts[i-1]
		rightOK := i == n-1 || counts[i] > counts[i+1]

		if leftOK && rightOK {
			candidates = append(candidates, i)
		}
	}

	slices.SortFunc(candidates, func(a, b int) int {
		if counts[a] != counts[b] {
			if counts[b] > counts[a] {
				return 1
			}

			return -1
		}

		return a - b
	})

	peaks := make([]bool, n)

	var kept []int

	for _, c := range candidates {
		tooClose := false

		for _, k := range kept {
			if abs(c-k) < peakSeparationHours {
				tooClose = true

				break
			}
		}

		if !tooClose {
			kept = append(kept, c)
			peaks[c] = true
		}
	}

	return peaks
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
