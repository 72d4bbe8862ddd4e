// Package max30003 drives a MAX30003 single-lead ECG analog front end
// over SPI. The chip-select line is software driven, so the device
// takes an already-connected SPI handle plus a dedicated output pin
// instead of opening hardware itself.
package max30003

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

var (
	// ErrNoConn is thrown when the device is created without an SPI
	// connection.
	ErrNoConn = errors.New("max30003: no SPI connection")
	// ErrNoSelectPin is thrown when the device is created without a
	// chip-select pin.
	ErrNoSelectPin = errors.New("max30003: no chip-select pin")
)

// Conn is the transmit half of an SPI connection. periph.io's spi.Conn
// satisfies it.
type Conn interface {
	Tx(w, r []byte) error
}

// SelectPin is an output pin used as an active-low chip select.
// periph.io's gpio.PinOut satisfies it.
type SelectPin interface {
	Out(l gpio.Level) error
}

// Timing
const (
	settleDelay = 10 * time.Millisecond
	resetDelay  = 100 * time.Millisecond
	configDelay = 50 * time.Millisecond
)

// Device defines a MAX30003 device.
type Device struct {
	conn  Conn
	cs    SelectPin
	sleep func(time.Duration)
}

// New returns a new MAX30003 device on the given SPI connection and
// chip-select pin. The connection must already be configured for
// 1MHz, mode 0, MSB first; the chip select must be wired active-low.
func New(conn Conn, cs SelectPin, options ...Option) (*Device, error) {
	if conn == nil {
		return nil, ErrNoConn
	}
	if cs == nil {
		return nil, ErrNoSelectPin
	}

	d := &Device{
		conn:  conn,
		cs:    cs,
		sleep: time.Sleep,
	}
	if _, err := d.Options(options...); err != nil {
		return nil, err
	}

	if err := d.cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("max30003: could not release chip select: %w", err)
	}

	return d, nil
}

// tx runs one chip-select-bracketed transfer. The deassert is deferred
// so the line is released even when the transfer fails.
func (d *Device) tx(w, r []byte) error {
	if err := d.cs.Out(gpio.Low); err != nil {
		return fmt.Errorf("max30003: could not assert chip select: %w", err)
	}
	defer d.cs.Out(gpio.High)

	if err := d.conn.Tx(w, r); err != nil {
		return fmt.Errorf("max30003: transfer failed: %w", err)
	}
	return nil
}

// WriteReg writes a 24-bit value to a register. The command byte is
// the address shifted left by one with the low bit cleared to signal a
// write. After the transfer the device is given a fixed settle delay
// before the next command.
func (d *Device) WriteReg(reg byte, value uint32) error {
	w := []byte{
		(reg << 1) & 0xFE,
		byte(value >> 16),
		byte(value >> 8),
		byte(value),
	}
	err := d.tx(w, nil)
	d.sleep(settleDelay)
	if err != nil {
		return fmt.Errorf("max30003: could not write register %#02x: %w", reg, err)
	}
	return nil
}

// ReadReg reads the 24-bit value of a register.
func (d *Device) ReadReg(reg byte) (uint32, error) {
	w := []byte{(reg << 1) | 0x01, 0, 0, 0}
	r := make([]byte, 4)
	if err := d.tx(w, r); err != nil {
		return 0, fmt.Errorf("max30003: could not read register %#02x: %w", reg, err)
	}
	return uint32(r[1])<<16 | uint32(r[2])<<8 | uint32(r[3]), nil
}

// Startup runs the power-up sequence: reset pulse, general
// configuration, ECG configuration, input mux, synchronization pulse.
// The order, values and delays follow the vendor's documented bring-up
// and each step must complete before the next begins.
func (d *Device) Startup() error {
	steps := []struct {
		reg   byte
		value uint32
		wait  time.Duration
	}{
		{NoOp, 0x000000, resetDelay},
		{CnfgGen, cnfgGenValue, configDelay},
		{CnfgEcg, cnfgEcgValue, configDelay},
		{CnfgEmux, cnfgEmuxValue, configDelay},
		{NoOp, 0x000000, 0},
	}
	for _, s := range steps {
		if err := d.WriteReg(s.reg, s.value); err != nil {
			return fmt.Errorf("max30003: startup: %w", err)
		}
		if s.wait > 0 {
			d.sleep(s.wait)
		}
	}
	return nil
}

// ReadSample pops one word from the ECG FIFO. The 24-bit word carries
// an 18-bit two's-complement voltage in the top bits and a 3-bit ETAG
// in bits 5:3. It returns the sign-extended voltage and whether the
// word held a valid sample. On FIFO overflow the FIFO is reset and the
// word discarded.
func (d *Device) ReadSample() (int32, bool, error) {
	word, err := d.ReadReg(EcgFIFO)
	if err != nil {
		return 0, false, err
	}

	switch etag := (word >> 3) & 0x7; etag {
	case etagValid, etagValidEOF:
		return int32(word<<8) >> 14, true, nil
	case etagOverflow:
		if err := d.WriteReg(FIFORst, 0); err != nil {
			return 0, false, err
		}
		return 0, false, nil
	default:
		return 0, false, nil
	}
}
