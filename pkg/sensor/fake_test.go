package sensor

import (
	"testing"
	"time"
)

func TestFakeSensorPacing(t *testing.T) {
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := &FakeSensor{now: func() time.Time { return clock }}
	if err := f.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// first poll lands exactly on schedule
	if _, ok := f.ReadSample(); !ok {
		t.Fatal("first poll: no sample")
	}
	// polling again before the next 128sps slot finds nothing
	clock = clock.Add(4 * time.Millisecond)
	if _, ok := f.ReadSample(); ok {
		t.Fatal("early poll: unexpected sample")
	}
	// past the slot a sample is waiting
	clock = clock.Add(4 * time.Millisecond)
	if _, ok := f.ReadSample(); !ok {
		t.Fatal("on-schedule poll: no sample")
	}
}

func TestFakeSensorWaveformBounds(t *testing.T) {
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := &FakeSensor{now: func() time.Time { return clock }}
	if err := f.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	peak := int32(0)
	for i := 0; i < 5*fakeBeatPeriod; i++ {
		v, ok := f.ReadSample()
		if !ok {
			t.Fatalf("sample %d: not available", i)
		}
		if v < -131072 || v > 131071 {
			t.Fatalf("sample %d = %d outside 18-bit range", i, v)
		}
		if v > peak {
			peak = v
		}
		clock = clock.Add(8 * time.Millisecond)
	}
	if peak < 8000 {
		t.Fatalf("no QRS peak in waveform, max = %d", peak)
	}
}
