package procon

// Button is a bit index into the packed input state.
type Button int

// Right-hand byte.
const (
	ButtonY Button = iota
	ButtonX
	ButtonB
	ButtonA
	ButtonRightSR
	ButtonRightSL
	ButtonR
	ButtonZR
)

// Shared byte.
const (
	ButtonMinus Button = iota + 8
	ButtonPlus
	ButtonRStick
	ButtonLStick
	ButtonHome
	ButtonCapture
	_
	// ButtonChargingGrip tells the console the controller is docked.
	ButtonChargingGrip
)

// Left-hand byte.
const (
	ButtonDown Button = iota + 16
	ButtonUp
	ButtonRight
	ButtonLeft
	ButtonLeftSR
	ButtonLeftSL
	ButtonL
	ButtonZL
)

// NumButtons is the number of addressable button bits.
const NumButtons = 24

// Axis selects one of the four 12-bit stick fields.
type Axis int

const (
	AxisLH Axis = iota
	AxisLV
	AxisRH
	AxisRV
)

const (
	ReportSize     = 64
	InputStateSize = 9

	axisBitOffset = 24
	axisBits      = 12
)

// Report kinds (byte 0 of an outbound report).
const (
	ReportIDSubcommandReply = 0x21
	ReportIDFullInput       = 0x30
	ReportIDHandshakeReply  = 0x81
)

// Report kinds (byte 0 of an inbound report).
const (
	ReportIDHandshake           = 0x80
	ReportIDRumbleAndSubcommand = 0x01
)

// Inbound report layout.
const (
	OffsetSubcommand  = 10
	OffsetFlashAddrLo = 11
	OffsetFlashAddrHi = 12

	minSubcommandReportLen = 17
	batchedReadThreshold   = 10
)

const (
	connectionInfo byte = 0x81
	vibratorReport byte = 0x0c
)

// Handshake commands carried in byte 1 after ReportIDHandshake.
const (
	HandshakeRequestAddress = 0x01
	HandshakeHello          = 0x02
	HandshakeStartReporting = 0x04
)

// Subcommands carried at OffsetSubcommand.
const (
	SubcmdBluetoothPair      = 0x01
	SubcmdRequestDeviceInfo  = 0x02
	SubcmdSetInputReportMode = 0x03
	SubcmdTriggerElapsedTime = 0x04
	SubcmdSetShipmentState   = 0x08
	SubcmdSPIFlashRead       = 0x10
	SubcmdSetMCUConfig       = 0x21
	SubcmdSetPlayerLights    = 0x30
	SubcmdSetHomeLight       = 0x38
	SubcmdEnableIMU          = 0x40
	SubcmdEnableVibration    = 0x48
)

// Ack codes placed before the echoed subcommand.
const (
	ackSimple        = 0x80
	ackBluetoothPair = 0x81
	ackDeviceInfo    = 0x82
	ackElapsedTime   = 0x83
	ackFlashRead     = 0x90
	ackMCUConfig     = 0xa0
)

const queueCapacity = 10
