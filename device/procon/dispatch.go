package procon

var mcuConfigReply = []byte{0x01, 0x00, 0xff, 0x00, 0x03, 0x00, 0x05, 0x01}

// Dispatch answers one inbound report. It returns nil for anything the real
// controller would not reply to: short frames, unknown commands and flash
// addresses outside the emulated table.
func Dispatch(buf, input []byte, id *Identity, tag *RollingTag) []byte {
	if len(buf) < 2 {
		return nil
	}
	switch {
	case buf[0] == ReportIDHandshake:
		return dispatchHandshake(buf[1], id)
	case buf[0] == ReportIDRumbleAndSubcommand && len(buf) >= minSubcommandReportLen:
		return dispatchSubcommand(buf, input, id, tag)
	}
	return nil
}

func dispatchHandshake(cmd byte, id *Identity) []byte {
	switch cmd {
	case HandshakeRequestAddress:
		addr := id.Address()
		payload := append([]byte{0x00, 0x03}, addr[:]...)
		return Report(ReportIDHandshakeReply, HandshakeRequestAddress, payload)
	case HandshakeHello:
		return Report(ReportIDHandshakeReply, HandshakeHello, nil)
	case HandshakeStartReporting:
		// console switches to full reporting, nothing to send back
		return nil
	}
	return nil
}

func dispatchSubcommand(buf, input []byte, id *Identity, tag *RollingTag) []byte {
	subcmd := buf[OffsetSubcommand]
	switch subcmd {
	case SubcmdBluetoothPair:
		return AckReport(tag.Next(), ackBluetoothPair, subcmd, input, []byte{0x03})
	case SubcmdRequestDeviceInfo:
		addr := id.Address()
		payload := make([]byte, 0, 12)
		payload = append(payload, 0x03, 0x48, 0x03, 0x02)
		payload = append(payload, addr[:]...)
		payload = append(payload, 0x03, 0x01)
		return AckReport(tag.Next(), ackDeviceInfo, subcmd, input, payload)
	case SubcmdSetInputReportMode, SubcmdSetShipmentState, SubcmdSetPlayerLights,
		SubcmdSetHomeLight, SubcmdEnableIMU, SubcmdEnableVibration:
		return AckReport(tag.Next(), ackSimple, subcmd, input, nil)
	case SubcmdTriggerElapsedTime:
		return AckReport(tag.Next(), ackElapsedTime, subcmd, input, nil)
	case SubcmdSetMCUConfig:
		return AckReport(tag.Next(), ackMCUConfig, subcmd, input, mcuConfigReply)
	case SubcmdSPIFlashRead:
		addr := FlashAddr{Lo: buf[OffsetFlashAddrLo], Hi: buf[OffsetFlashAddrHi]}
		data, ok := ReadFlash(addr, id)
		if !ok {
			return nil
		}
		return FlashReadReport(tag.Next(), addr.Lo, addr.Hi, input, data)
	}
	return nil
}

// DispatchRead answers the bytes returned by one device read. The host may
// coalesce several 2-byte polls into a single short read; those are answered
// one by one. A trailing odd byte is dropped.
func DispatchRead(buf, input []byte, id *Identity, tag *RollingTag) [][]byte {
	var out [][]byte
	if len(buf) >= batchedReadThreshold {
		if r := Dispatch(buf, input, id, tag); r != nil {
			out = append(out, r)
		}
		return out
	}
	for i := 0; i+2 <= len(buf); i += 2 {
		if r := Dispatch(buf[i:i+2], input, id, tag); r != nil {
			out = append(out, r)
		}
	}
	return out
}
