package console

import (
	"fmt"

	"github.com/user7217/arduino-ecg/pkg/output"
	"github.com/user7217/arduino-ecg/pkg/sensor"
)

// ConsoleOutput writes one decimal sample value per line, the same
// framing the firmware used on its serial console.
type ConsoleOutput struct{}

func NewConsole() output.Output { return &ConsoleOutput{} }

func (c *ConsoleOutput) Publish(r sensor.Reading) error {
	fmt.Printf("%d\n", r.Raw)
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }
