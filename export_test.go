package samplerate

import "math"

// CorruptRatioForTest damages the ratio state so the next call trips the
// invariant check.
func (c *Converter) CorruptRatioForTest() {
	c.lastRatio = math.NaN()
}

// Overlaps exposes the aliasing check.
var Overlaps = overlaps
