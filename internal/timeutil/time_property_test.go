package timeutil

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any segment and range, the overlap is bounded by both the segment length and the range length
func TestProperty_OverlapBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(offset int64) time.Time { return base.Add(time.Duration(offset) * time.Second) }

	properties.Property("overlap is within [0, min(segment, range)]", prop.ForAll(
		func(segStart, segLen, rangeStart, rangeLen int64) bool {
			got := OverlapSeconds(at(segStart), at(segStart+segLen), at(rangeStart), at(rangeStart+rangeLen))
			if got < 0 {
				return false
			}
			if segLen <= 0 {
				return got == 0
			}
			return got <= segLen && got <= max64(rangeLen, 0)
		},
		gen.Int64Range(0, 86400),
		gen.Int64Range(-3600, 86400),
		gen.Int64Range(0, 86400),
		gen.Int64Range(0, 86400),
	))

	properties.Property("a range covering the segment returns its full length", prop.ForAll(
		func(segStart, segLen int64) bool {
			return OverlapSeconds(at(segStart), at(segStart+segLen), at(segStart-1), at(segStart+segLen+1)) == segLen
		},
		gen.Int64Range(1, 86400),
		gen.Int64Range(1, 86400),
	))

	properties.TestingRun(t)
}

// For any pair of clock times, a shift lasts more than zero and at most one day
func TestProperty_ShiftDurationWithinOneDay(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("0 < duration <= 86400", prop.ForAll(
		func(startSec, endSec int) bool {
			start := SecondsToHMS(int64(startSec))
			end := SecondsToHMS(int64(endSec))
			d := ShiftDurationSeconds(start, end)
			return d > 0 && d <= secondsPerDay
		},
		gen.IntRange(0, secondsPerDay-1),
		gen.IntRange(0, secondsPerDay-1),
	))

	properties.Property("start + duration lands on end modulo one day", prop.ForAll(
		func(startSec, endSec int) bool {
			d := ShiftDurationSeconds(SecondsToHMS(int64(startSec)), SecondsToHMS(int64(endSec)))
			return (startSec+d)%secondsPerDay == endSec
		},
		gen.IntRange(0, secondsPerDay-1),
		gen.IntRange(0, secondsPerDay-1),
	))

	properties.TestingRun(t)
}

// For any request, the capped limit is within [1, max]
func TestProperty_CapLimitWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("1 <= CapLimit <= max", prop.ForAll(
		func(value float64, max int) bool {
			got := CapLimit(value, 1, max)
			return got >= 1 && got <= max
		},
		gen.Float64Range(-1e6, 1e6),
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
