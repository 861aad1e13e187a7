// Package device provides the boundary between a virtual controller and the
// HID gadget character device(s) it talks through.
package device

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Port is a duplex byte stream to the console. Each Write carries exactly one
// report; each Read returns at most one inbound report (or a batch of short
// polls coalesced by the host).
type Port interface {
	io.Reader
	io.Writer
	io.Closer
}

// DeadlineReader is implemented by ports whose reads can be bounded in time.
// os.File implements it for character devices and FIFOs.
type DeadlineReader interface {
	SetReadDeadline(t time.Time) error
}

// IsTimeout reports whether err came from an expired read deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// Open opens the gadget device. If writePath is empty, readPath is used for
// both directions (the usual /dev/hidgN case). Both handles are opened
// read-write so that FIFOs do not block waiting for a peer.
func Open(readPath, writePath string) (Port, error) {
	if readPath == "" {
		return nil, errors.New("device path is empty")
	}
	r, err := os.OpenFile(readPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s for reading: %w", readPath, err)
	}
	if writePath == "" || writePath == readPath {
		return r, nil
	}
	w, err := os.OpenFile(writePath, os.O_RDWR, 0)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("open %s for writing: %w", writePath, err)
	}
	return &splitPort{r: r, w: w}, nil
}

// splitPort joins separate read and write files into one Port.
type splitPort struct {
	r *os.File
	w *os.File
}

func (p *splitPort) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *splitPort) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p *splitPort) SetReadDeadline(t time.Time) error {
	return p.r.SetReadDeadline(t)
}

func (p *splitPort) Close() error {
	return errors.Join(p.r.Close(), p.w.Close())
}
