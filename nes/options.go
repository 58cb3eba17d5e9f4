package nes

import (
	"errors"
	"fmt"
	"io"
)

// Option configures a Console at construction.
type Option func(*Console) error

func (c *Console) setOptions(options ...Option) error {
	for i, option := range options {
		if err := option(c); err != nil {
			return fmt.Errorf("failed to set option index %d: %w", i, err)
		}
	}
	return nil
}

// WithTrace writes a line in nestest.log format before every instruction.
func WithTrace(w io.Writer) Option {
	return func(c *Console) error {
		if w == nil {
			return errors.New("trace writer is nil")
		}
		c.trace = w
		return nil
	}
}

// WithStartPC starts execution at pc instead of the reset vector. nestest
// uses $C000 for its automated mode.
func WithStartPC(pc uint16) Option {
	return func(c *Console) error {
		c.startPC = pc
		c.hasStartPC = true
		return nil
	}
}

// WithRandomRAM fills work RAM with values from a seeded source at power on,
// rather than zeroes.
func WithRandomRAM(seed int64) Option {
	return func(c *Console) error {
		c.randomRAM = true
		c.seed = seed
		return nil
	}
}
