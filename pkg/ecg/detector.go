package ecg

import "time"

const (
	// thresholdFraction of the recent 95th percentile a sample must
	// cross to count as a beat candidate.
	thresholdFraction = 0.65
	// refractory window after a beat during which no new beat is
	// accepted.
	refractory = 400 * time.Millisecond
	// threshold is recomputed once per this many samples.
	thresholdEvery = 16
)

// detector finds beats by upward crossings of an adaptive threshold
// derived from the recent signal envelope.
type detector struct {
	window     []float64
	widx       int
	filled     bool
	threshold  float64
	sinceCalc  int
	prev       float64
	lastBeat   int
	refractSam int
	n          int
}

func newDetector(sampleRate int) *detector {
	return &detector{
		window:     make([]float64, 4*sampleRate),
		lastBeat:   -1,
		refractSam: int(refractory.Seconds() * float64(sampleRate)),
	}
}

// check feeds one conditioned sample and reports whether it opens a
// beat. Detection stays off until the envelope window has filled once.
func (d *detector) check(v float64) bool {
	d.window[d.widx] = v
	d.widx++
	if d.widx == len(d.window) {
		d.widx = 0
		d.filled = true
	}

	d.sinceCalc++
	if d.filled && d.sinceCalc >= thresholdEvery {
		d.threshold = thresholdFraction * percentile95(d.window)
		d.sinceCalc = 0
	}

	beat := false
	if d.filled && d.threshold > 0 &&
		d.prev <= d.threshold && v > d.threshold &&
		(d.lastBeat < 0 || d.n-d.lastBeat >= d.refractSam) {
		beat = true
		d.lastBeat = d.n
	}

	d.prev = v
	d.n++
	return beat
}
