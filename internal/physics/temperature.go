package physics

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// nightStartMinutes is 03:00, the zero point of the clock.
	nightStartMinutes = 3 * 60
	// sunriseElapsed is the elapsed time at which the Red Giant rises (05:00).
	sunriseElapsed = 120

	baseTemperature    = 28.0
	sunriseTemperature = 60.0
	postSunriseRamp    = 0.5

	// HazardTemperature is where burn damage starts.
	HazardTemperature = 50
)

// ErrTimeFormat is returned for a clock string that is not "HH:MM".
var ErrTimeFormat = errors.New("time must be HH:MM")

// ParseClock parses a zero-padded 24-hour "HH:MM" string into minutes past midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 || s[0] == '+' || s[3] == '+' {
		return 0, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	return h*60 + m, nil
}

// ElapsedMinutes returns the minutes since 03:00 for a "HH:MM" clock string.
func ElapsedMinutes(clock string) (int, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return minutes - nightStartMinutes, nil
}

// Temperature returns the ambient temperature after the given elapsed minutes.
// It climbs quadratically from 28 to 60 until sunrise, then linearly.
func Temperature(elapsed int) float64 {
	var temp float64
	if elapsed >= sunriseElapsed {
		temp = sunriseTemperature + postSunriseRamp*float64(elapsed-sunriseElapsed)
	} else {
		progress := float64(elapsed) / sunriseElapsed
		progress = max(0, min(1, progress))
		temp = baseTemperature + progress*progress*(sunriseTemperature-baseTemperature)
	}
	return float64(int(temp))
}
