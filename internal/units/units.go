// Package units provides shared constants and conversion for length and
// angle units. Field specifications are authored in inches and degrees;
// everything downstream of the build step works in meters and radians.
package units

import "math"

// Unit constants
const (
	Meters = "meters"
	Inches = "inches"
	Feet   = "feet"
)

// MetersPerInch is the exact international inch.
const MetersPerInch = 0.0254

// ValidUnits contains all valid length unit values
var ValidUnits = []string{Meters, Inches, Feet}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ValidUnitsString returns a comma-separated string of valid units for error messages
func ValidUnitsString() string {
	return "meters, inches, feet"
}

// InchesToMeters converts a length authored in inches to meters.
func InchesToMeters(inches float64) float64 {
	return inches * MetersPerInch
}

// MetersToInches converts a length in meters back to inches.
func MetersToInches(meters float64) float64 {
	return meters / MetersPerInch
}

// ConvertLength converts a length from meters to the target units.
// Layouts store lengths in meters.
func ConvertLength(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case Meters:
		return meters
	case Inches:
		return MetersToInches(meters)
	case Feet:
		return MetersToInches(meters) / 12.0
	default:
		return meters
	}
}

// DegreesToRadians converts an angle authored in degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}
