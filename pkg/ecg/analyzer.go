package ecg

import "math"

const (
	bpmWindow   = 10
	rrWindow    = 30
	minBPM      = 40
	maxBPM      = 180
	minRRForHRV = 10
	// prematureFraction of the mean RR interval under which a beat is
	// flagged as premature.
	prematureFraction = 0.8
	minRRForPremature = 5
)

// EventPrematureBeat is the annotation attached to a beat that arrives
// well ahead of the running rhythm.
const EventPrematureBeat = "premature_beat"

// Result is the annotation derived from one sample.
type Result struct {
	Filtered  float64
	Beat      bool
	BPM       float64 // 0 until a stable rate is known
	SDNN      float64 // HRV in milliseconds, 0 until enough intervals
	Premature bool
}

// Analyzer runs the conditioning and detection chain over a sample
// stream and keeps rate and variability statistics. Timing is derived
// from the sample index at the configured rate, not from wall clock.
type Analyzer struct {
	fs   int
	cond *conditioner
	det  *detector

	n        int
	lastBeat int
	rr       []float64 // seconds between accepted beats
	bpmWin   []float64
	bpm      float64
	sdnn     float64
}

func NewAnalyzer(sampleRate int) *Analyzer {
	return &Analyzer{
		fs:       sampleRate,
		cond:     newConditioner(),
		det:      newDetector(sampleRate),
		lastBeat: -1,
	}
}

// Process feeds one raw sample and returns its annotation.
func (a *Analyzer) Process(raw int32) Result {
	f := a.cond.process(float64(raw))
	res := Result{Filtered: f}

	if a.det.check(f) {
		res.Beat = true
		if a.lastBeat >= 0 {
			a.onBeat(float64(a.n-a.lastBeat)/float64(a.fs), &res)
		}
		a.lastBeat = a.n
	}
	a.n++

	res.BPM = a.bpm
	res.SDNN = a.sdnn
	return res
}

func (a *Analyzer) onBeat(dur float64, res *Result) {
	instant := 60 / dur
	if instant <= minBPM || instant >= maxBPM {
		return
	}

	if len(a.rr) >= minRRForPremature && dur < prematureFraction*mean(a.rr) {
		res.Premature = true
	}

	a.rr = append(a.rr, dur)
	if len(a.rr) > rrWindow {
		a.rr = a.rr[1:]
	}

	if len(a.bpmWin) < 5 || math.Abs(instant-median(a.bpmWin)) < 30 {
		a.bpmWin = append(a.bpmWin, instant)
		if len(a.bpmWin) > bpmWindow {
			a.bpmWin = a.bpmWin[1:]
		}
		a.bpm = median(a.bpmWin)
	}

	if len(a.rr) > minRRForHRV {
		a.sdnn = stdev(a.rr) * 1000
	}
}
