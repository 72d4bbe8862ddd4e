// Package ecg conditions the raw sample stream and derives beat, rate
// and variability metrics from it.
package ecg

// movingAverage keeps a slow exponential estimate of the baseline
// wander so it can be subtracted before filtering.
type movingAverage struct {
	mean float64
}

func (m *movingAverage) add(n float64) {
	m.mean += (n - m.mean) / 32
}

// firTaps is a 23-tap symmetric low-pass kernel, normalized to unity
// gain at DC.
var firTaps = normalize(buildTaps())

func buildTaps() []float64 {
	half := []float64{21.5, 40.125, 72.375, 115.875, 170.0, 232.25, 298.75, 364.5, 423.875, 471.0, 501.5}
	taps := make([]float64, 0, 2*len(half)+1)
	taps = append(taps, half...)
	taps = append(taps, 512.0)
	for i := len(half) - 1; i >= 0; i-- {
		taps = append(taps, half[i])
	}
	return taps
}

func normalize(taps []float64) []float64 {
	sum := 0.0
	for _, t := range taps {
		sum += t
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

// conditioner is the band-pass stage: baseline removal followed by a
// low-pass FIR.
type conditioner struct {
	dc  movingAverage
	buf []float64
	idx int
}

func newConditioner() *conditioner {
	return &conditioner{
		buf: make([]float64, len(firTaps)),
	}
}

func (c *conditioner) process(raw float64) float64 {
	c.dc.add(raw)
	c.buf[c.idx] = raw - c.dc.mean

	n := len(c.buf)
	out := 0.0
	for i, t := range firTaps {
		out += t * c.buf[(c.idx-i+n)%n]
	}

	c.idx++
	c.idx %= n
	return out
}
