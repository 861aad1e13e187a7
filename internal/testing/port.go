// Package testing provides test doubles for the gadget device.
package testing

import (
	"os"
	"sync"
	"testing"
	"time"
)

// MockPort stands in for a HID gadget device. Reports fed with Feed are
// returned by Read one per call; everything written is captured in order.
type MockPort struct {
	inbound chan []byte
	written chan []byte
	gate    chan struct{}

	mu       sync.Mutex
	deadline time.Time

	closed    chan struct{}
	closeOnce sync.Once
}

// NewMockPort returns a port whose writes complete immediately.
func NewMockPort(t *testing.T) *MockPort {
	t.Helper()
	return &MockPort{
		inbound: make(chan []byte, 64),
		written: make(chan []byte, 256),
		closed:  make(chan struct{}),
	}
}

// NewGatedMockPort returns a port whose writes block until AllowWrites hands
// out a token, simulating a console that stopped polling.
func NewGatedMockPort(t *testing.T) *MockPort {
	p := NewMockPort(t)
	p.gate = make(chan struct{}, 256)
	return p
}

// Feed queues one inbound read. An empty slice makes Read return (0, nil).
func (p *MockPort) Feed(data []byte) {
	b := make([]byte, len(data))
	copy(b, data)
	p.inbound <- b
}

// AllowWrites lets n more writes through a gated port.
func (p *MockPort) AllowWrites(n int) {
	for i := 0; i < n; i++ {
		p.gate <- struct{}{}
	}
}

// Written exposes the captured writes.
func (p *MockPort) Written() <-chan []byte { return p.written }

// NextWrite waits up to timeout for the next captured write.
func (p *MockPort) NextWrite(t *testing.T, timeout time.Duration) []byte {
	t.Helper()
	select {
	case b := <-p.written:
		return b
	case <-time.After(timeout):
		t.Fatalf("no report written within %v", timeout)
		return nil
	}
}

// NoWrite asserts nothing is written for d.
func (p *MockPort) NoWrite(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case b := <-p.written:
		t.Fatalf("unexpected report written: % x", b)
	case <-time.After(d):
	}
}

func (p *MockPort) SetReadDeadline(t time.Time) error {
	p.mu.Lock()
	p.deadline = t
	p.mu.Unlock()
	return nil
}

func (p *MockPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	deadline := p.deadline
	p.mu.Unlock()

	var expired <-chan time.Time
	if !deadline.IsZero() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-p.closed:
		return 0, os.ErrClosed
	case data := <-p.inbound:
		return copy(b, data), nil
	case <-expired:
		return 0, os.ErrDeadlineExceeded
	}
}

func (p *MockPort) Write(b []byte) (int, error) {
	if p.gate != nil {
		select {
		case <-p.closed:
			return 0, os.ErrClosed
		case <-p.gate:
		}
	}
	select {
	case <-p.closed:
		return 0, os.ErrClosed
	default:
	}
	c := make([]byte, len(b))
	copy(c, b)
	p.written <- c
	return len(b), nil
}

func (p *MockPort) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}

// Closed reports whether Close has been called.
func (p *MockPort) Closed() bool {
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}
