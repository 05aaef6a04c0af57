// Package units converts door dimensions and thermal transmittance values
// between the measurement systems accepted at the engine boundary.
//
// Lengths are carried internally in millimeters and U-values in W/m²K.
// Unit tokens are parsed once at the boundary into closed enum types so the
// rest of the engine never branches on raw strings.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// BTUToWatt converts a U-value from BTU/hr·ft²·°F to W/m²K.
const BTUToWatt = 5.678

// ErrInvalidUnit is returned when a unit token is not in the supported set.
var ErrInvalidUnit = errors.New("invalid unit")

// LengthUnit identifies a supported length unit.
type LengthUnit string

const (
	Millimeter LengthUnit = "mm"
	Meter      LengthUnit = "m"
	Foot       LengthUnit = "ft"
	Inch       LengthUnit = "in"
)

// UValueUnit identifies a supported thermal transmittance unit.
type UValueUnit string

const (
	// BTU is BTU/hr·ft²·°F, the unit NFRC certifications are published in.
	BTU UValueUnit = "BTU"
	// Metric is W/m²K.
	Metric UValueUnit = "W"
)

// ParseLengthUnit parses a case-insensitive length unit token.
func ParseLengthUnit(s string) (LengthUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm":
		return Millimeter, nil
	case "m":
		return Meter, nil
	case "ft":
		return Foot, nil
	case "in":
		return Inch, nil
	}
	return "", fmt.Errorf("%w: unsupported length unit %q", ErrInvalidUnit, s)
}

// ParseUValueUnit parses a case-insensitive U-value unit token. Accepts
// "BTU" and "W".
func ParseUValueUnit(s string) (UValueUnit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BTU":
		return BTU, nil
	case "W":
		return Metric, nil
	}
	return "", fmt.Errorf("%w: unsupported U-value unit %q", ErrInvalidUnit, s)
}

// millimetersPer returns the exact conversion factor for one unit.
func millimetersPer(unit LengthUnit) (float64, error) {
	switch unit {
	case Millimeter:
		return 1.0, nil
	case Meter:
		return 1000.0, nil
	case Foot:
		return 304.8, nil
	case Inch:
		return 25.4, nil
	}
	return 0, fmt.Errorf("%w: unsupported length unit %q", ErrInvalidUnit, string(unit))
}

// LengthToMM converts a length in the given unit to millimeters.
func LengthToMM(value float64, unit LengthUnit) (float64, error) {
	factor, err := millimetersPer(unit)
	if err != nil {
		return 0, err
	}
	return value * factor, nil
}

// MMToLength converts a length in millimeters to the given unit.
func MMToLength(valueMM float64, unit LengthUnit) (float64, error) {
	factor, err := millimetersPer(unit)
	if err != nil {
		return 0, err
	}
	return valueMM / factor, nil
}

// UToMetric converts a U-value in the given unit to W/m²K.
func UToMetric(value float64, unit UValueUnit) (float64, error) {
	switch unit {
	case Metric:
		return value, nil
	case BTU:
		return value * BTUToWatt, nil
	}
	return 0, fmt.Errorf("%w: unsupported U-value unit %q", ErrInvalidUnit, string(unit))
}

// UToBTU converts a U-value from W/m²K to BTU/hr·ft²·°F.
func UToBTU(metric float64) float64 {
	return metric / BTUToWatt
}
