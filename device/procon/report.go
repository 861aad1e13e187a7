package procon

import (
	"sync/atomic"

	"github.com/sanjay900/procon-gadget/device"
)

// RollingTag produces the byte that follows the report kind in every reply.
// The console uses it to spot dropped or repeated reports, so it only has to
// change between consecutive reports.
type RollingTag struct {
	n atomic.Uint32
}

// Next returns the next tag value, wrapping at 256.
func (t *RollingTag) Next() byte {
	return byte(t.n.Add(1))
}

// Report frames payload behind a two byte header and zero-pads it to
// ReportSize. It returns nil when the payload does not fit.
func Report(code, subcode byte, payload []byte) []byte {
	if len(payload)+2 > ReportSize {
		return nil
	}
	b := make([]byte, ReportSize)
	b[0] = code
	b[1] = subcode
	copy(b[2:], payload)
	return b
}

// AckReport builds a subcommand reply echoing input and acknowledging subcmd
// with ackCode.
func AckReport(tag, ackCode, subcmd byte, input, payload []byte) []byte {
	body := make([]byte, 0, 1+len(input)+3+len(payload))
	body = append(body, connectionInfo)
	body = append(body, input...)
	body = append(body, vibratorReport, ackCode, subcmd)
	body = append(body, payload...)
	return Report(ReportIDSubcommandReply, tag, body)
}

// FlashReadReport answers an SPI flash read of data at (addrLo, addrHi).
func FlashReadReport(tag, addrLo, addrHi byte, input, data []byte) []byte {
	body := make([]byte, 0, 5+len(data))
	body = append(body, addrLo, addrHi, 0x00, 0x00, byte(len(data)))
	body = append(body, data...)
	return AckReport(tag, ackFlashRead, SubcmdSPIFlashRead, input, body)
}

// InputReport builds a full-mode input report around the packed state.
func InputReport(tag byte, state device.ReportBuilder) []byte {
	block := state.BuildReport()
	body := make([]byte, 0, 1+len(block))
	body = append(body, connectionInfo)
	body = append(body, block...)
	return Report(ReportIDFullInput, tag, body)
}
