// Package estimator computes the GPU memory required to hold a model's
// parameters at a given numeric precision.
package estimator

import "fmt"

// DefaultOverheadFactor is the multiplier applied on top of raw weight bytes
// to account for runtime memory beyond parameter storage (activations,
// framework buffers). Calibrated so 175B parameters at 32-bit come out at
// 782.31 GB.
const DefaultOverheadFactor = 1.2

// Formula computes memory requirements from a parameter count.
type Formula struct {
	// Overhead multiplies the raw parameter byte count.
	Overhead float64
}

// NewFormula returns a Formula with the default overhead factor.
func NewFormula() Formula {
	return Formula{Overhead: DefaultOverheadFactor}
}

// BytesRequired returns the memory in bytes needed to load paramCount
// parameters at the given precision.
func (f Formula) BytesRequired(paramCount float64, bits Precision) (float64, error) {
	if _, err := ParsePrecision(int(bits)); err != nil {
		return 0, err
	}
	return paramCount * float64(bits) / 8 * f.Overhead, nil
}

// Estimate pairs a precision with the bytes required at that precision.
type Estimate struct {
	Bits  Precision
	Bytes float64
}

// Humanize renders a byte count using binary (1024) scaling with the largest
// unit that keeps the value at or above 1, two decimal places.
func Humanize(bytes float64) string {
	units := []struct {
		size   float64
		suffix string
	}{
		{1 << 40, "TB"},
		{1 << 30, "GB"},
		{1 << 20, "MB"},
		{1 << 10, "KB"},
	}
	for _, unit := range units {
		if bytes >= unit.size {
			return fmt.Sprintf("%.2f %s", bytes/unit.size, unit.suffix)
		}
	}
	return fmt.Sprintf("%.2f B", bytes)
}
