package depth

import "math"

// depthScale maps PyDNet++ scores onto the 0-255 palette range.
const depthScale = 9

type ColorMapOptions struct {
	// Normalize rescales values by the observed min/max of the map instead
	// of the fixed depthScale.
	Normalize bool
}

// Color maps one depth score to an opaque ARGB value.
func Color(v float32) uint32 {
	return pack(v * depthScale)
}

// pack clamps scaled into [0,255] and builds the palette entry. The
// expression is kept bit-exact: at x=256 red spills into the alpha byte and
// blue into green, so a zero score renders as 0xFF008100.
func pack(scaled float32) uint32 {
	var c int32
	switch {
	case scaled != scaled: // NaN
		c = 0
	case scaled > 255:
		c = 255
	case scaled < 0:
		c = 0
	default:
		c = int32(scaled)
	}
	x := uint32(256 - c)
	return 0xFF000000 | x<<16 | (x/2)<<8 | x
}

// ApplyColorMap maps every value of a flattened depth map to ARGB.
func ApplyColorMap(values []float32, opts ColorMapOptions) []uint32 {
	colors := make([]uint32, len(values))
	if !opts.Normalize {
		for i, v := range values {
			colors[i] = Color(v)
		}
		return colors
	}

	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range values {
		if !finite(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	for i, v := range values {
		switch {
		case math.IsInf(float64(v), 1):
			colors[i] = pack(255)
		case !finite(v) || !(span > 0):
			colors[i] = pack(0)
		default:
			colors[i] = pack((v - lo) / span * 255)
		}
	}
	return colors
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
