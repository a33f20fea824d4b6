package catalogdump

import (
	"fmt"
	"strconv"
	"strings"
)

var siPrefixes = map[byte]float64{
	'k': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
	'P': 1e15,
}

// parseQuantity splits "150kW" into 150000 and the unit 'W'
func parseQuantity(s string) (float64, byte, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("malformed energy value %q", s)
	}
	unit := s[len(s)-1]
	if unit != 'W' && unit != 'J' {
		return 0, 0, fmt.Errorf("malformed energy value %q: unit must be W or J", s)
	}
	number := s[:len(s)-1]
	multiplier := 1.0
	if m, ok := siPrefixes[number[len(number)-1]]; ok {
		multiplier = m
		number = number[:len(number)-1]
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed energy value %q: %w", s, err)
	}
	return v * multiplier, unit, nil
}

// parsePower converts an energy string to watts. Per-tick joule values are scaled by 60.
// An empty string is zero.
func parsePower(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, unit, err := parseQuantity(s)
	if err != nil {
		return 0, err
	}
	if unit == 'J' {
		v *= 60
	}
	return v, nil
}

// parseFuelValue reads a fuel value given as "4MJ" or a bare number, in joules
func parseFuelValue(raw []byte) (float64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		v, _, err := parseQuantity(unquoted)
		return v, err
	}
	return strconv.ParseFloat(text, 64)
}
