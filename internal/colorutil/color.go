// Package colorutil provides the validation and lightening helpers the
// cell model uses to accept or reject hex colors coming off the wire.
package colorutil

import (
	"fmt"
	"strings"
	"sync"
)

// Validate reports whether color is an acceptable wire color: either a
// "#" followed by 3, 6, or 8 hex digits, or a non-"#" token (a named
// color, passed through opaquely to the Surface).
func Validate(color string) bool {
	if color == "" {
		return false
	}
	if !strings.HasPrefix(color, "#") {
		return true
	}
	digits := color[1:]
	switch len(digits) {
	case 3, 6, 8:
	default:
		return false
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}

// Normalize lowercases a hex color for storage. Non-hex tokens are
// returned unchanged (see the Open Question in spec.md §9: hex color
// case is not semantically meaningful).
func Normalize(color string) string {
	if strings.HasPrefix(color, "#") {
		return strings.ToLower(color)
	}
	return color
}

type lightenKey struct {
	hex    string
	factor float64
}

var (
	lightenMu    sync.Mutex
	lightenCache = map[lightenKey]string{}
)

// Lighten blends hex towards white by factor (0=no change, 1=white),
// memoized on (hex, factor). The result is always "#rrggbb": for
// "#RRGGBBAA" (or any input with more than six digits) only the first
// six digits are used and the rest are dropped. Non-"#" inputs, inputs
// with fewer than six digits other than "#RGB", and inputs with
// non-hex digits are returned unchanged.
func Lighten(hex string, factor float64) string {
	key := lightenKey{hex: hex, factor: factor}

	lightenMu.Lock()
	if cached, ok := lightenCache[key]; ok {
		lightenMu.Unlock()
		return cached
	}
	lightenMu.Unlock()

	if !strings.HasPrefix(hex, "#") {
		return hex
	}
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) == 3 {
		expanded := make([]byte, 0, 6)
		for _, c := range digits {
			expanded = append(expanded, byte(c), byte(c))
		}
		digits = string(expanded)
	}
	if len(digits) < 6 {
		return hex
	}

	r, okR := hexByte(digits[0:2])
	g, okG := hexByte(digits[2:4])
	b, okB := hexByte(digits[4:6])
	if !okR || !okG || !okB {
		return hex
	}

	result := fmt.Sprintf("#%02x%02x%02x", lightenChannel(r, factor), lightenChannel(g, factor), lightenChannel(b, factor))

	lightenMu.Lock()
	lightenCache[key] = result
	lightenMu.Unlock()

	return result
}

func lightenChannel(c byte, factor float64) int {
	v := int(float64(c) + (255-float64(c))*factor)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return v
}

func hexByte(s string) (byte, bool) {
	var v byte
	for _, r := range s {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= byte(r - '0')
		case r >= 'a' && r <= 'f':
			v |= byte(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v |= byte(r-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
