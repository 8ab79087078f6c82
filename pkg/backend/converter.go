// ABOUTME: Direct DAC backend
// ABOUTME: Writes one converter code per sample
package backend

import (
	"fmt"

	"github.com/Resonate-Protocol/pcmstream/pkg/hal"
)

// DirectConverter writes samples straight to a DAC channel
type DirectConverter struct {
	dac  hal.DAC
	bits int
	rng  Range
}

// NewDirectConverter initializes dac at 8 bits for 8-bit sources and 12
// bits otherwise
func NewDirectConverter(dac hal.DAC, width int) (*DirectConverter, error) {
	if dac == nil {
		return nil, &HardwareInitError{Backend: KindConverter.String(), Reason: "no DAC channel"}
	}

	bits := converterBits(width)
	if err := dac.Init(bits); err != nil {
		return nil, &HardwareInitError{
			Backend: KindConverter.String(),
			Reason:  fmt.Sprintf("init at %d bits", bits),
			Err:     err,
		}
	}

	return &DirectConverter{dac: dac, bits: bits, rng: ConverterRange(bits)}, nil
}

func (c *DirectConverter) Kind() Kind   { return KindConverter }
func (c *DirectConverter) Range() Range { return c.rng }

// Bits returns the converter resolution
func (c *DirectConverter) Bits() int { return c.bits }

func (c *DirectConverter) Write(value int) error {
	return c.dac.Write(value)
}
