package sensor

import "time"

// Reading is one acquired ECG sample plus whatever annotation the
// analysis chain attached to it. Raw is the decoded front-end value;
// the remaining fields stay zero when analysis is disabled.
type Reading struct {
	Raw       int32     `json:"raw"`
	Filtered  float64   `json:"filtered,omitempty"`
	BPM       float64   `json:"bpm,omitempty"`
	HRV       float64   `json:"hrv_ms,omitempty"`
	Event     string    `json:"event,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sensor is an ECG sample source. ReadSample reports one decoded
// sample and whether one was available; polling faster than the
// device's output rate makes the false case the common one.
type Sensor interface {
	Init() error
	ReadSample() (int32, bool)
	Close() error
}
