package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps every HID report crossing the gadget device.
type RawLogger interface {
	Log(in bool, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits a single-line report dump with timestamp and hex bytes.
// in=true means console->controller, in=false means controller->console.
// Trailing zero padding is trimmed from the hex dump.
func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	dir := "pad->console"
	if in {
		dir = "console->pad"
	}

	end := len(data)
	for end > 1 && data[end-1] == 0 {
		end--
	}

	line := fmt.Sprintf("%s %s report: %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05.000"),
		dir,
		len(data),
		spacedHex(data[:end]))

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}

func spacedHex(data []byte) string {
	enc := hex.EncodeToString(data)
	out := make([]byte, 0, len(enc)+len(data))
	for i := 0; i < len(enc); i += 2 {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, enc[i], enc[i+1])
	}
	return string(out)
}
