package filter

import "math"

// reportScale stretches the prototype by two so its whole stop band, up to the
// prototype's own Nyquist frequency, lands below the evaluation Nyquist.
const reportScale = 0.5

// TableReport summarises the designed response of a SincTable.
type TableReport struct {
	Params SincParams

	// Points is the number of designed points in the wing.
	Points int

	// MemoryUsage is the size of the table in bytes.
	MemoryUsage int64

	// Band edges in cycles per input sample at ratio 1.
	PassbandEdge float64
	StopbandEdge float64

	// RippleDB is the largest deviation from unity gain in the pass band.
	RippleDB float64

	// StopbandDB is the highest gain anywhere in the stop band.
	StopbandDB float64
}

// Report measures the pass band ripple and stop band attenuation that the
// table actually reaches, evaluating its impulse response at points
// frequencies. A non-positive points uses the default resolution.
func Report(t *SincTable, points int) TableReport {
	p := t.Params()
	r := TableReport{
		Params:       p,
		Points:       t.Len(),
		MemoryUsage:  t.MemoryUsage(),
		PassbandEdge: p.PassbandEdge(),
		StopbandEdge: p.StopbandEdge(),
		StopbandDB:   math.Inf(-1),
	}

	pass := reportScale * r.PassbandEdge
	stop := reportScale * r.StopbandEdge
	resp := ComputeFrequencyResponse(t.Impulse(0, reportScale), points)
	for i, f := range resp.Frequencies {
		db := MagnitudeDB(resp.Magnitude[i])
		switch {
		case f <= pass:
			r.RippleDB = max(r.RippleDB, math.Abs(db))
		case f >= stop:
			r.StopbandDB = max(r.StopbandDB, db)
		}
	}
	return r
}
