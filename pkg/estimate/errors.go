package estimate

import "errors"

// Estimation failures are typed sentinels so callers can map them onto
// their own error surfaces. All validation happens before any derived
// computation; no partial results are ever returned.
var (
	// ErrNonPositiveDimension covers width, height or glass U-value ≤ 0,
	// and panel counts below one.
	ErrNonPositiveDimension = errors.New("non-positive dimension")

	// ErrDegenerateCalibration is returned when the two reference glass
	// U-values coincide, collapsing the back-solve.
	ErrDegenerateCalibration = errors.New("degenerate calibration")

	// ErrNumericOverflow is returned when a pathologically large input
	// drives an intermediate value out of float64 range.
	ErrNumericOverflow = errors.New("numeric overflow")
)
