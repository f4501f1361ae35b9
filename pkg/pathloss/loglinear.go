// Package pathloss holds log-linear radio path loss models. These sit next to
// the obstruction queries as link-level collaborators; the query core never
// depends on them.
package pathloss

import "math"

// LogLinear is a log-linear path loss model:
//
//	loss(d) = Const + Slope*log10(d)
//
// with d in meters and loss in dB.
type LogLinear struct {
	Name  string
	Const float64
	Slope float64
}

// At evaluates the path loss for a link distance in meters.
func (m LogLinear) At(distMeters float64) float64 {
	return m.Const + m.Slope*math.Log10(distMeters)
}

// FreeSpace returns the free-space path loss model for a carrier frequency in
// MHz: 20*log10(f) - 27.55 constant, slope 20.
func FreeSpace(freqMHz float64) LogLinear {
	return LogLinear{
		Name:  "Free-space path loss",
		Const: 20*math.Log10(freqMHz) - 27.55,
		Slope: 20,
	}
}
