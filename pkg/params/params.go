// Package params converts between human-readable parameter counts
// ("175B", "2.5M") and their numeric values.
package params

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidFormat indicates a parameter count string that could not be parsed.
var ErrInvalidFormat = errors.New("invalid parameter count format")

// Power-of-ten multipliers for the recognized unit suffixes.
const (
	Thousand = 1e3
	Million  = 1e6
	Billion  = 1e9
	Trillion = 1e12
)

// countRegex matches an integer or decimal number followed by an optional
// unit letter, e.g. "175B", "2.5m", "405000000000".
var countRegex = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([kKmMbBtT])?$`)

var unitMultipliers = map[string]float64{
	"k": Thousand,
	"m": Million,
	"b": Billion,
	"t": Trillion,
}

// Parse converts a parameter count string to its numeric value. The input may
// be a plain integer or decimal, or carry a case-insensitive K/M/B/T suffix.
func Parse(input string) (float64, error) {
	match := countRegex.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return 0, errors.Wrapf(ErrInvalidFormat, "%q", input)
	}
	number, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidFormat, "%q", input)
	}
	if match[2] == "" {
		return number, nil
	}
	return number * unitMultipliers[strings.ToLower(match[2])], nil
}

// Format renders a parameter count with the largest unit suffix whose
// multiplier it reaches, one decimal place, e.g. 175000000000 -> "175.0B".
// Counts below a thousand are rendered as-is.
func Format(count float64) string {
	units := []struct {
		multiplier float64
		suffix     string
	}{
		{Trillion, "T"},
		{Billion, "B"},
		{Million, "M"},
		{Thousand, "K"},
	}
	for _, unit := range units {
		if count >= unit.multiplier {
			return fmt.Sprintf("%.1f%s", count/unit.multiplier, unit.suffix)
		}
	}
	return strconv.FormatFloat(count, 'f', -1, 64)
}
