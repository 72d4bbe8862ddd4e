package sensor

import (
	"math/rand"
	"sync"
	"time"

	"github.com/user7217/arduino-ecg/pkg/max30003"
)

// qrsTemplate is a crude PQRST shape, one entry per sample at 128sps.
// Values are on the front end's 18-bit scale.
var qrsTemplate = []int32{
	0, 120, 260, 120, 0, // P wave
	0, 0,
	-400, 2600, 9000, 2600, -900, -400, // QRS complex
	0, 0, 0,
	200, 420, 600, 420, 200, // T wave
}

const fakeBeatPeriod = 100 // samples per beat, ~77 bpm at 128sps

// FakeSensor synthesizes an ECG waveform at the device's output rate.
// Samples become available on the same 128sps schedule as the real
// front end, so a faster poll loop sees empty reads in between.
type FakeSensor struct {
	mu   sync.Mutex
	next time.Time
	idx  int
	now  func() time.Time
}

func NewFakeSensor() Sensor {
	return &FakeSensor{now: time.Now}
}

func (f *FakeSensor) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next = f.now()
	f.idx = 0
	return nil
}

func (f *FakeSensor) ReadSample() (int32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if now.Before(f.next) {
		return 0, false
	}
	f.next = f.next.Add(time.Second / max30003.SampleRate)
	if f.next.Before(now) {
		f.next = now
	}

	v := int32(rand.Intn(81) - 40) // baseline noise
	if f.idx < len(qrsTemplate) {
		v += qrsTemplate[f.idx]
	}
	f.idx++
	if f.idx >= fakeBeatPeriod {
		f.idx = 0
	}
	return v, true
}

func (f *FakeSensor) Close() error { return nil }
