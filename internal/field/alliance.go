package field

import (
	"fmt"
	"strings"
)

// Alliance identifies one of the two mirrored halves of the field.
type Alliance string

const (
	// Blue is the alliance whose near corner is the coordinate origin.
	// Element poses are stored canonically on the blue side.
	Blue Alliance = "blue"
	// Red is the alliance on the far half; red poses are always computed
	// by mirroring the canonical blue pose.
	Red Alliance = "red"
)

// ParseAlliance converts a string to an Alliance, case-insensitively.
func ParseAlliance(s string) (Alliance, error) {
	switch strings.ToLower(s) {
	case string(Blue):
		return Blue, nil
	case string(Red):
		return Red, nil
	default:
		return "", fmt.Errorf("unknown alliance %q (want blue or red)", s)
	}
}
