// Package mathutil provides the special functions used by the sinc table design.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
//
// The power series Σ ((x/2)²)ᵏ / (k!)² is summed until the next term no longer
// changes the result. For the arguments a Kaiser window needs (|x| below ~20) this
// converges in a few dozen terms and is accurate to the last bit or two, which
// matters for stop-band levels below -140 dB.
func BesselI0(x float64) float64 {
	q := x * x / besselSeriesQuarter
	sum := 1.0
	term := 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		fk := float64(k)
		term *= q / (fk * fk)
		sum += term
		if term < sum*besselSeriesEpsilon {
			break
		}
	}
	return sum
}

// KaiserBeta computes the Kaiser window β parameter from the desired
// stopband attenuation in decibels.
//
// Formula from Kaiser & Schafer:
//   - For att > 50 dB: β = 0.1102 * (att - 8.7)
//   - For 21 dB ≤ att ≤ 50 dB: β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - For att < 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	if attenuation > kaiserAttHigh {
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	} else if attenuation >= kaiserAttMedium {
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	}
	return 0.0
}

// KaiserWindow evaluates the continuous Kaiser window at x ∈ [-1, 1]:
//
//	w(x) = I₀(β·√(1-x²)) / I₀(β)
//
// Outside [-1, 1] the window is zero.
func KaiserWindow(x, beta float64) float64 {
	if x < -1 || x > 1 {
		return 0
	}
	return BesselI0(beta*math.Sqrt(1-x*x)) / BesselI0(beta)
}

// TransitionWidth returns the transition bandwidth, as a fraction of the sample
// rate, that a Kaiser-windowed FIR of the given length reaches at the given
// stopband attenuation. It inverts Kaiser's length estimate
//
//	N ≈ (att - 7.95) / (14.36 · Δf)
func TransitionWidth(attenuation float64, taps int) float64 {
	if taps < 1 {
		return math.Inf(1)
	}
	att := max(attenuation, kaiserLengthOffset)
	return (att - kaiserLengthOffset) / (kaiserLengthMultiplier * float64(taps))
}
