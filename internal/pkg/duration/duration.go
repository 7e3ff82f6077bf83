// Package duration converts the (quantity, unit) pair posted by the share and
// extend forms into a number of seconds.
package duration

import (
	"strconv"
	"strings"
)

const (
	defaultQuantity = 1
	defaultUnit     = "h"
)

var multipliers = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 24 * 3600,
}

// Parse returns quantity*unit in seconds. A missing, non-numeric or zero
// quantity falls back to 1; an unrecognized unit falls back to hours, so the
// fully-empty input yields one hour. Negative quantities pass through as-is.
func Parse(quantity, unit string) int64 {
	qty := int64(defaultQuantity)
	if v, err := strconv.ParseInt(strings.TrimSpace(quantity), 10, 64); err == nil && v != 0 {
		qty = v
	}
	mult, ok := multipliers[normalizeUnit(unit)]
	if !ok {
		mult = multipliers[defaultUnit]
	}
	return qty * mult
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "s", "sec", "secs", "second", "seconds":
		return "s"
	case "m", "min", "mins", "minute", "minutes":
		return "m"
	case "h", "hour", "hours":
		return "h"
	case "d", "day", "days":
		return "d"
	}
	return ""
}
