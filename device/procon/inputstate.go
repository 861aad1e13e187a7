package procon

import (
	"encoding/hex"
	"io"
)

// InputState is the packed button and stick block of an input report.
//
// Bits are numbered LSB-first: bit n lives in byte n/8 at mask 1<<(n%8).
// Bits 0-23 are buttons (see Button). Bits 24-71 hold LH, LV, RH and RV as
// 12-bit little-endian fields.
type InputState [InputStateSize]byte

// NewInputState returns a zeroed state with the charging grip bit set.
func NewInputState() InputState {
	var s InputState
	s.Set(ButtonChargingGrip, true)
	return s
}

// Set sets or clears a button. Out-of-range buttons are ignored.
func (s *InputState) Set(b Button, pressed bool) {
	if b < 0 || b >= NumButtons {
		return
	}
	mask := byte(1) << (uint(b) % 8)
	if pressed {
		s[b/8] |= mask
	} else {
		s[b/8] &^= mask
	}
}

// Pressed reports whether a button bit is set.
func (s *InputState) Pressed(b Button) bool {
	if b < 0 || b >= NumButtons {
		return false
	}
	return s[b/8]&(1<<(uint(b)%8)) != 0
}

// SetAxis stores the top 12 bits of value. Unknown axes are ignored.
func (s *InputState) SetAxis(a Axis, value uint16) {
	if a < AxisLH || a > AxisRV {
		return
	}
	s.storeBits(axisBitOffset+int(a)*axisBits, axisBits, value>>4)
}

// Axis returns the stored 12-bit value of an axis, or 0 for unknown axes.
func (s *InputState) Axis(a Axis) uint16 {
	if a < AxisLH || a > AxisRV {
		return 0
	}
	return s.loadBits(axisBitOffset+int(a)*axisBits, axisBits)
}

func (s *InputState) storeBits(offset, width int, v uint16) {
	for i := 0; i < width; i++ {
		n := offset + i
		mask := byte(1) << (n % 8)
		if v&(1<<i) != 0 {
			s[n/8] |= mask
		} else {
			s[n/8] &^= mask
		}
	}
}

func (s *InputState) loadBits(offset, width int) uint16 {
	var v uint16
	for i := 0; i < width; i++ {
		n := offset + i
		if s[n/8]&(1<<(n%8)) != 0 {
			v |= 1 << i
		}
	}
	return v
}

// BuildReport returns a copy of the packed block.
func (s InputState) BuildReport() []byte {
	b := make([]byte, InputStateSize)
	copy(b, s[:])
	return b
}

func (s InputState) MarshalBinary() ([]byte, error) {
	return s.BuildReport(), nil
}

func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputStateSize {
		return io.ErrUnexpectedEOF
	}
	copy(s[:], data[:InputStateSize])
	return nil
}

func (s InputState) String() string {
	return hex.EncodeToString(s[:])
}
