package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/user7217/arduino-ecg/pkg/config"
	"github.com/user7217/arduino-ecg/pkg/max30003"
)

type MAX30003Sensor struct {
	dev  *max30003.Device
	port spi.PortCloser
}

// NewMAX30003Sensor opens the SPI port and chip-select pin from the
// configuration and binds a MAX30003 device to them. The chip select
// is driven in software, so the port is connected with spi.NoCS. If a
// co-located peripheral shares the bus, its select pin is driven high
// once here and never touched again.
func NewMAX30003Sensor(cfg config.Config) (Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	cs := gpioreg.ByName(cfg.SPI.CSPin)
	if cs == nil {
		return nil, fmt.Errorf("chip-select pin %q not found", cfg.SPI.CSPin)
	}
	if err := cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("chip-select pin %q: %w", cfg.SPI.CSPin, err)
	}
	if cfg.SPI.HoldPin != "" {
		hold := gpioreg.ByName(cfg.SPI.HoldPin)
		if hold == nil {
			return nil, fmt.Errorf("hold pin %q not found", cfg.SPI.HoldPin)
		}
		if err := hold.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("hold pin %q: %w", cfg.SPI.HoldPin, err)
		}
	}

	port, err := spireg.Open(cfg.SPI.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}
	conn, err := port.Connect(physic.MegaHertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi: %w", err)
	}

	dev, err := max30003.New(conn, cs)
	if err != nil {
		port.Close()
		return nil, err
	}
	return &MAX30003Sensor{dev: dev, port: port}, nil
}

// Init runs the front end's power-up register sequence.
func (s *MAX30003Sensor) Init() error {
	return s.dev.Startup()
}

// ReadSample polls the ECG FIFO once. Bus faults are indistinguishable
// from an empty FIFO at this level: the sample is simply skipped.
func (s *MAX30003Sensor) ReadSample() (int32, bool) {
	v, ok, err := s.dev.ReadSample()
	if err != nil {
		return 0, false
	}
	return v, ok
}

func (s *MAX30003Sensor) Close() error {
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}
