package procon_test

import (
	"testing"

	"github.com/sanjay900/procon-gadget/device/procon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputStateHoldsChargingGrip(t *testing.T) {
	s := procon.NewInputState()
	assert.Equal(t, procon.InputState{0x00, 0x80}, s)
	assert.True(t, s.Pressed(procon.ButtonChargingGrip))
}

func TestPressReleaseTouchesOneBit(t *testing.T) {
	for b := procon.Button(0); b < procon.NumButtons; b++ {
		s := procon.NewInputState()
		s.SetAxis(procon.AxisRV, 0xabcd)
		before := s

		s.Set(b, true)
		assert.True(t, s.Pressed(b), "button %d", b)
		s.Set(b, false)
		assert.False(t, s.Pressed(b), "button %d", b)

		want := before
		want.Set(b, false)
		assert.Equal(t, want, s, "button %d", b)
	}
}

func TestButtonBitLayout(t *testing.T) {
	type testCase struct {
		name   string
		button procon.Button
		byteAt int
		mask   byte
	}
	cases := []testCase{
		{name: "Y", button: procon.ButtonY, byteAt: 0, mask: 0x01},
		{name: "A", button: procon.ButtonA, byteAt: 0, mask: 0x08},
		{name: "ZR", button: procon.ButtonZR, byteAt: 0, mask: 0x80},
		{name: "Minus", button: procon.ButtonMinus, byteAt: 1, mask: 0x01},
		{name: "Home", button: procon.ButtonHome, byteAt: 1, mask: 0x10},
		{name: "Capture", button: procon.ButtonCapture, byteAt: 1, mask: 0x20},
		{name: "Down", button: procon.ButtonDown, byteAt: 2, mask: 0x01},
		{name: "Left", button: procon.ButtonLeft, byteAt: 2, mask: 0x08},
		{name: "ZL", button: procon.ButtonZL, byteAt: 2, mask: 0x80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s procon.InputState
			s.Set(tc.button, true)
			var want procon.InputState
			want[tc.byteAt] = tc.mask
			assert.Equal(t, want, s)
		})
	}
}

func TestOutOfRangeIsNoop(t *testing.T) {
	s := procon.NewInputState()
	before := s
	s.Set(procon.NumButtons, true)
	s.Set(-1, true)
	s.SetAxis(procon.Axis(4), 0xffff)
	s.SetAxis(procon.Axis(-1), 0xffff)
	assert.Equal(t, before, s)
	assert.False(t, s.Pressed(procon.NumButtons))
	assert.Equal(t, uint16(0), s.Axis(procon.Axis(7)))
}

func TestSetAxisQuantization(t *testing.T) {
	axes := []procon.Axis{procon.AxisLH, procon.AxisLV, procon.AxisRH, procon.AxisRV}
	for _, a := range axes {
		var s procon.InputState
		for v := 0; v <= 0xffff; v++ {
			s.SetAxis(a, uint16(v))
			if s.Axis(a)<<4 != uint16(v)&0xfff0 {
				t.Fatalf("axis %d value %#04x: stored %#03x", a, v, s.Axis(a))
			}
		}
		for _, other := range axes {
			if other != a {
				assert.Equal(t, uint16(0), s.Axis(other), "axis %d leaked into %d", a, other)
			}
		}
	}
}

func TestAxisBitLayout(t *testing.T) {
	var s procon.InputState
	s.SetAxis(procon.AxisLH, 0xfff0)
	s.SetAxis(procon.AxisLV, 0x1230)
	s.SetAxis(procon.AxisRH, 0x4560)
	s.SetAxis(procon.AxisRV, 0x7890)

	// 12-bit little-endian fields packed back to back from bit 24
	assert.Equal(t, procon.InputState{0, 0, 0, 0xff, 0x3f, 0x12, 0x56, 0x94, 0x78}, s)
}

func TestInputStateRoundTrip(t *testing.T) {
	s := procon.NewInputState()
	s.Set(procon.ButtonA, true)
	s.Set(procon.ButtonZL, true)
	s.SetAxis(procon.AxisLH, 0x8000)
	s.SetAxis(procon.AxisRV, 0x1234)

	report := procon.InputReport(0x42, s)
	require.Len(t, report, procon.ReportSize)

	var decoded procon.InputState
	require.NoError(t, decoded.UnmarshalBinary(report[3:3+procon.InputStateSize]))
	assert.Equal(t, s, decoded)

	assert.Error(t, decoded.UnmarshalBinary(report[:4]))
}
