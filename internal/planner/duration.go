package planner

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/devarispbrown/stackshift/internal/migration"
)

// durationRe parses the "N-M days/weeks" phase duration format.
var durationRe = regexp.MustCompile(`^(\d+)-(\d+)\s+(days?|weeks?)$`)

// EstimateDuration sums the midpoint of every phase's duration range, scales
// by complexity, and buckets the total by magnitude.
func EstimateDuration(phases []migration.MigrationPhase, complexityScore int) string {
	totalDays := 0.0
	for _, phase := range phases {
		totalDays += midpointDays(phase.EstimatedDuration)
	}

	scaled := int(math.Ceil(totalDays * (1 + float64(complexityScore)/100)))

	switch {
	case scaled < 14:
		return fmt.Sprintf("%d days", scaled)
	case scaled < 60:
		return fmt.Sprintf("%d weeks", int(math.Ceil(float64(scaled)/7)))
	default:
		return fmt.Sprintf("%d months", int(math.Ceil(float64(scaled)/30)))
	}
}

// midpointDays converts "3-5 days" or "1-2 weeks" to the midpoint in days.
// Unparseable strings count as zero.
func midpointDays(duration string) float64 {
	match := durationRe.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	low, err1 := strconv.Atoi(match[1])
	high, err2 := strconv.Atoi(match[2])
	if err1 != nil || err2 != nil {
		return 0
	}

	midpoint := float64(low+high) / 2
	if match[3] == "week" || match[3] == "weeks" {
		midpoint *= 7
	}
	return midpoint
}
