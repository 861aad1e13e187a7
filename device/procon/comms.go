package procon

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sanjay900/procon-gadget/device"
	"github.com/sanjay900/procon-gadget/internal/log"
)

// comms is one running session against the gadget device: a reader that
// answers the console and a writer that owns the device's write side.
type comms struct {
	port      device.Port
	identity  *Identity
	tag       *RollingTag
	logger    *slog.Logger
	rawLogger log.RawLogger

	pollInterval time.Duration

	queue chan []byte
	done  chan struct{}
	wg    sync.WaitGroup
}

func newComms(port device.Port, c *Controller) *comms {
	return &comms{
		port:         port,
		identity:     c.identity,
		tag:          &c.tag,
		logger:       c.logger,
		rawLogger:    c.rawLogger,
		pollInterval: c.pollInterval,
		queue:        make(chan []byte, queueCapacity),
		done:         make(chan struct{}),
	}
}

func (cm *comms) start() {
	cm.wg.Add(2)
	go cm.writeLoop()
	go cm.readLoop()
}

func (cm *comms) stopped() bool {
	select {
	case <-cm.done:
		return true
	default:
		return false
	}
}

// send queues a report for the writer, blocking while the queue is full.
// Nil reports (oversized payloads) and sends after stop are dropped.
func (cm *comms) send(report []byte) {
	if report == nil || cm.stopped() {
		return
	}
	select {
	case cm.queue <- report:
	case <-cm.done:
	}
}

func (cm *comms) writeLoop() {
	defer cm.wg.Done()
	for {
		select {
		case <-cm.done:
			return
		case report := <-cm.queue:
			cm.rawLogger.Log(false, report)
			if _, err := cm.port.Write(report); err != nil {
				if cm.stopped() {
					return
				}
				cm.logger.Debug("HID write failed, dropping report", "error", err)
			}
		}
	}
}

func (cm *comms) readLoop() {
	defer cm.wg.Done()

	input := NeutralInput()
	buf := make([]byte, ReportSize)
	dr, bounded := cm.port.(device.DeadlineReader)

	for {
		if cm.stopped() {
			return
		}
		if bounded {
			if err := dr.SetReadDeadline(time.Now().Add(cm.pollInterval)); err != nil {
				cm.logger.Debug("HID device does not support read deadlines", "error", err)
				bounded = false
			}
		}

		n, err := cm.port.Read(buf)
		if err != nil {
			if device.IsTimeout(err) {
				continue
			}
			if cm.stopped() {
				return
			}
			if !errors.Is(err, io.EOF) {
				cm.logger.Debug("HID read failed", "error", err)
			}
			cm.backoff()
			continue
		}
		if n == 0 {
			cm.backoff()
			continue
		}

		cm.rawLogger.Log(true, buf[:n])
		for _, report := range DispatchRead(buf[:n], input, cm.identity, cm.tag) {
			cm.send(report)
		}
	}
}

// backoff waits one poll interval so a device that returns immediately
// without data does not spin the reader.
func (cm *comms) backoff() {
	t := time.NewTimer(cm.pollInterval)
	defer t.Stop()
	select {
	case <-cm.done:
	case <-t.C:
	}
}

// stop signals both workers, closes the device to interrupt in-flight I/O and
// waits up to timeout for them to exit.
func (cm *comms) stop(timeout time.Duration) {
	close(cm.done)
	if err := cm.port.Close(); err != nil {
		cm.logger.Debug("closing HID device", "error", err)
	}

	finished := make(chan struct{})
	go func() {
		cm.wg.Wait()
		close(finished)
	}()

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-finished:
	case <-t.C:
		cm.logger.Warn("HID workers did not exit in time", "timeout", timeout)
	}
}
