package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/user7217/arduino-ecg/pkg/config"
	"github.com/user7217/arduino-ecg/pkg/output"
	"github.com/user7217/arduino-ecg/pkg/sensor"
)

type stubRead struct {
	v  int32
	ok bool
}

// stubSensor replays a fixed script of reads, then reports empty polls
// until the run loop's context is cancelled.
type stubSensor struct {
	script []stubRead
	idx    int
	drain  int
	cancel context.CancelFunc
}

func (s *stubSensor) Init() error { return nil }

func (s *stubSensor) ReadSample() (int32, bool) {
	if s.idx < len(s.script) {
		r := s.script[s.idx]
		s.idx++
		return r.v, r.ok
	}
	s.drain--
	if s.drain <= 0 {
		s.cancel()
	}
	return 0, false
}

func (s *stubSensor) Close() error { return nil }

type recordingOutput struct {
	readings []sensor.Reading
}

func (r *recordingOutput) Publish(s sensor.Reading) error {
	r.readings = append(r.readings, s)
	return nil
}

func (r *recordingOutput) Close() error { return nil }

func TestRunEmitsOneLinePerSample(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &stubSensor{
		script: []stubRead{{0, false}, {12345, true}, {0, false}},
		drain:  20,
		cancel: cancel,
	}
	rec := &recordingOutput{}
	run(ctx, s, nil, []output.Output{rec}, 100*time.Microsecond)

	if len(rec.readings) != 1 {
		t.Fatalf("published %d readings; want 1", len(rec.readings))
	}
	if rec.readings[0].Raw != 12345 {
		t.Fatalf("published raw = %d; want 12345", rec.readings[0].Raw)
	}
}

func TestRunSilentWhenNoSamples(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &stubSensor{drain: 50, cancel: cancel}
	rec := &recordingOutput{}
	run(ctx, s, nil, []output.Output{rec}, 100*time.Microsecond)

	if len(rec.readings) != 0 {
		t.Fatalf("published %d readings; want 0", len(rec.readings))
	}
}

func TestInitOutputs(t *testing.T) {
	cfg := config.Config{Outputs: []config.OutputConfig{
		{Type: "console"},
		{Type: "csv", Path: filepath.Join(t.TempDir(), "ecg.csv")},
	}}
	outs, err := initOutputs(cfg)
	if err != nil {
		t.Fatalf("initOutputs: %v", err)
	}
	defer closeOutputs(outs)
	if len(outs) != 2 {
		t.Fatalf("outputs len: %d", len(outs))
	}

	cfg.Outputs = []config.OutputConfig{{Type: "udp"}}
	if _, err := initOutputs(cfg); err == nil {
		t.Fatal("initOutputs: expected error for unknown type")
	}
}

func TestNewSensorSimulation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SensorType = "simulation"
	s, err := newSensor(cfg)
	if err != nil {
		t.Fatalf("newSensor: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*sensor.FakeSensor); !ok {
		t.Fatalf("newSensor returned %T; want *sensor.FakeSensor", s)
	}
}
