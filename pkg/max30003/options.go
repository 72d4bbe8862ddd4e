package max30003

import (
	"errors"
	"time"
)

// Option defines a functional option for the device.
type Option func(d *Device) (Option, error)

// Options sets different configuration options and returns the
// previous value of the last option passed.
func (d *Device) Options(options ...Option) (Option, error) {
	var old Option
	var err error
	for _, opt := range options {
		old, err = opt(d)
		if err != nil {
			return nil, err
		}
	}

	return old, nil
}

// SleepFunc replaces the blocking delay used for settle and bring-up
// waits. A logical clock can be substituted to test the power-up
// timing without real waiting.
func SleepFunc(f func(time.Duration)) Option {
	return func(d *Device) (Option, error) {
		if f == nil {
			return nil, errors.New("max30003: sleep function cannot be nil")
		}
		old := d.sleep
		d.sleep = f
		return SleepFunc(old), nil
	}
}
