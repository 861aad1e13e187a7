package procon

// neutralInput is the button/stick block echoed in every subcommand reply:
// charging grip held, both sticks centred.
var neutralInput = [InputStateSize]byte{0x00, 0x80, 0x00, 0xf8, 0xd7, 0x7a, 0x22, 0xc8, 0x7b}

// Factory data served from the virtual SPI flash.
var (
	// all 0xff: no factory serial
	serialNumber = [16]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}

	sensorStickParams = [24]byte{
		0x50, 0xfd, 0x00, 0x00, 0xc6, 0x0f, 0x0f, 0x30, 0x61, 0x96, 0x30, 0xf3,
		0xd4, 0x14, 0x54, 0x41, 0x15, 0x54, 0xc7, 0x79, 0x9c, 0x33, 0x36, 0x63,
	}

	stickParams2 = [18]byte{
		0x0f, 0x30, 0x61, 0x96, 0x30, 0xf3, 0xd4, 0x14, 0x54,
		0x41, 0x15, 0x54, 0xc7, 0x79, 0x9c, 0x33, 0x36, 0x63,
	}

	factoryConfig = [25]byte{
		0xba, 0x15, 0x62, 0x11, 0xb8, 0x7f, 0x29, 0x06, 0x5b, 0xff, 0xe7, 0x7e, 0x0e,
		0x36, 0x56, 0x9e, 0x85, 0x60, 0xff, 0x32, 0x32, 0x32, 0xff, 0xff, 0xff,
	}

	// user calibration absent except for the trailing magic
	userCalibration = [24]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xb2, 0xa1,
	}

	sensorCalibration = [24]byte{
		0xbe, 0xff, 0x3e, 0x00, 0xf0, 0x01, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40,
		0xfe, 0xff, 0xfe, 0xff, 0x08, 0x00, 0xe7, 0x3b, 0xe7, 0x3b, 0xe7, 0x3b,
	}
)

// FlashAddr is the (low, high) address pair of a virtual SPI flash read.
type FlashAddr struct {
	Lo, Hi byte
}

var (
	FlashSerialNumber      = FlashAddr{0x00, 0x60}
	FlashColors            = FlashAddr{0x50, 0x60}
	FlashSensorStickParams = FlashAddr{0x80, 0x60}
	FlashStickParams2      = FlashAddr{0x98, 0x60}
	FlashFactoryConfig     = FlashAddr{0x3d, 0x60}
	FlashUserCalibration   = FlashAddr{0x10, 0x80}
	FlashSensorCalibration = FlashAddr{0x28, 0x80}
)

// flashTable maps readable addresses to their contents. Colors are
// per-controller and resolved from the Identity.
var flashTable = map[FlashAddr]func(id *Identity) []byte{
	FlashSerialNumber:      func(*Identity) []byte { return serialNumber[:] },
	FlashColors:            func(id *Identity) []byte { return id.colorBytes() },
	FlashSensorStickParams: func(*Identity) []byte { return sensorStickParams[:] },
	FlashStickParams2:      func(*Identity) []byte { return stickParams2[:] },
	FlashFactoryConfig:     func(*Identity) []byte { return factoryConfig[:] },
	FlashUserCalibration:   func(*Identity) []byte { return userCalibration[:] },
	FlashSensorCalibration: func(*Identity) []byte { return sensorCalibration[:] },
}

// ReadFlash returns the contents served for addr, or false when the address is
// not emulated. The returned slice must not be modified.
func ReadFlash(addr FlashAddr, id *Identity) ([]byte, bool) {
	f, ok := flashTable[addr]
	if !ok {
		return nil, false
	}
	return f(id), true
}

// NeutralInput returns the canned input block echoed in subcommand replies.
func NeutralInput() []byte {
	b := neutralInput
	return b[:]
}
