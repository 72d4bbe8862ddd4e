package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/user7217/arduino-ecg/pkg/config"
	"github.com/user7217/arduino-ecg/pkg/ecg"
	"github.com/user7217/arduino-ecg/pkg/max30003"
	"github.com/user7217/arduino-ecg/pkg/output"
	"github.com/user7217/arduino-ecg/pkg/output/console"
	"github.com/user7217/arduino-ecg/pkg/output/csvlog"
	mqttout "github.com/user7217/arduino-ecg/pkg/output/mqtt"
	"github.com/user7217/arduino-ecg/pkg/sensor"
)

// pollInterval is the fixed gap between FIFO polls, ~250 iterations/s
// against the front end's 128sps output rate. Most polls find nothing
// and a sample occasionally waits one extra iteration in the FIFO.
const pollInterval = 4 * time.Millisecond

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSensor(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	outs, err := initOutputs(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeOutputs(outs)

	if err := s.Init(); err != nil {
		log.Fatal(err)
	}

	var analyzer *ecg.Analyzer
	if cfg.Analysis {
		analyzer = ecg.NewAnalyzer(max30003.SampleRate)
	}

	run(ctx, s, analyzer, outs, pollInterval)
}

func newSensor(cfg config.Config) (sensor.Sensor, error) {
	switch cfg.SensorType {
	case "simulation":
		return sensor.NewFakeSensor(), nil
	default:
		return sensor.NewMAX30003Sensor(cfg)
	}
}

func initOutputs(cfg config.Config) ([]output.Output, error) {
	outs := make([]output.Output, 0, len(cfg.Outputs))
	for _, oc := range cfg.Outputs {
		switch strings.ToLower(oc.Type) {
		case "console":
			outs = append(outs, console.NewConsole())
		case "csv":
			o, err := csvlog.NewCSV(oc.Path)
			if err != nil {
				closeOutputs(outs)
				return nil, err
			}
			outs = append(outs, o)
		case "mqtt":
			var mc config.MQTTConfig
			if oc.MQTT != nil {
				mc = *oc.MQTT
			}
			o, err := mqttout.NewMQTT(mc)
			if err != nil {
				closeOutputs(outs)
				return nil, err
			}
			outs = append(outs, o)
		default:
			closeOutputs(outs)
			return nil, fmt.Errorf("unknown output type %q", oc.Type)
		}
	}
	return outs, nil
}

func closeOutputs(outs []output.Output) {
	for _, o := range outs {
		if err := o.Close(); err != nil {
			log.Printf("output close: %v", err)
		}
	}
}

// run polls the sensor until the context is cancelled. Each iteration
// fetches at most one sample; anything queued in the front end's FIFO
// is picked up on later iterations.
func run(ctx context.Context, s sensor.Sensor, analyzer *ecg.Analyzer, outs []output.Output, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		raw, ok := s.ReadSample()
		if !ok {
			continue
		}
		r := sensor.Reading{Raw: raw, Timestamp: time.Now()}
		if analyzer != nil {
			res := analyzer.Process(raw)
			r.Filtered = res.Filtered
			r.BPM = res.BPM
			r.HRV = res.SDNN
			if res.Premature {
				r.Event = ecg.EventPrematureBeat
			}
		}
		for _, o := range outs {
			if err := o.Publish(r); err != nil {
				log.Printf("publish: %v", err)
			}
		}
	}
}
