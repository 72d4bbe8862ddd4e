package output

import "github.com/user7217/arduino-ecg/pkg/sensor"

type Output interface {
	Publish(sensor.Reading) error
	Close() error
}

// concrete outputs live in subpackages
