// Package procon emulates a wireless Pro Controller on a USB HID gadget.
//
// A Controller answers the console's pairing handshake, subcommands and SPI
// flash reads from canned factory data, and sends input reports built from
// its button and stick state whenever the caller flushes.
package procon

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sanjay900/procon-gadget/device"
	"github.com/sanjay900/procon-gadget/internal/log"
)

const (
	DefaultDevice          = "/dev/hidg0"
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultShutdownTimeout = 2 * time.Second
)

// ErrAlreadyRunning is returned by StartComms when communication is active.
var ErrAlreadyRunning = errors.New("controller communication already running")

// CreateOptions configures a Controller. Nil and zero fields take defaults.
type CreateOptions struct {
	// Device is the gadget device, read and written unless WriteDevice is set.
	Device      string
	WriteDevice string

	Address        *[6]byte
	BodyColor      *Color
	ButtonColor    *Color
	LeftGripColor  *Color
	RightGripColor *Color

	PollInterval    time.Duration
	ShutdownTimeout time.Duration

	// Open overrides how the device is opened.
	Open func() (device.Port, error)
}

type Controller struct {
	identity  *Identity
	open      func() (device.Port, error)
	logger    *slog.Logger
	rawLogger log.RawLogger

	pollInterval    time.Duration
	shutdownTimeout time.Duration

	tag RollingTag

	stateMu sync.Mutex
	state   InputState

	commsMu sync.Mutex
	comms   *comms
}

func New(o *CreateOptions, logger *slog.Logger, rawLogger log.RawLogger) (*Controller, error) {
	if o == nil {
		o = &CreateOptions{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}

	var addr [6]byte
	if o.Address != nil {
		addr = *o.Address
	} else {
		var err error
		if addr, err = RandomAddress(); err != nil {
			return nil, fmt.Errorf("failed to generate link address: %w", err)
		}
	}
	body := DefaultBodyColor
	if o.BodyColor != nil {
		body = *o.BodyColor
	}
	buttons := DefaultButtonColor
	if o.ButtonColor != nil {
		buttons = *o.ButtonColor
	}

	c := &Controller{
		identity:        NewIdentity(addr, body, buttons, o.LeftGripColor, o.RightGripColor),
		open:            o.Open,
		logger:          logger,
		rawLogger:       rawLogger,
		pollInterval:    o.PollInterval,
		shutdownTimeout: o.ShutdownTimeout,
		state:           NewInputState(),
	}
	if c.open == nil {
		path := o.Device
		if path == "" {
			path = DefaultDevice
		}
		writePath := o.WriteDevice
		c.open = func() (device.Port, error) { return device.Open(path, writePath) }
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.shutdownTimeout <= 0 {
		c.shutdownTimeout = DefaultShutdownTimeout
	}
	return c, nil
}

func (c *Controller) Identity() *Identity { return c.identity }

// State returns a snapshot of the packed button and stick state.
func (c *Controller) State() InputState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// Running reports whether StartComms has been called without a matching Stop.
func (c *Controller) Running() bool {
	c.commsMu.Lock()
	defer c.commsMu.Unlock()
	return c.comms != nil
}

// StartComms opens the device and starts answering the console. Nothing is
// left running when it returns an error.
func (c *Controller) StartComms() error {
	c.commsMu.Lock()
	defer c.commsMu.Unlock()
	if c.comms != nil {
		return ErrAlreadyRunning
	}
	port, err := c.open()
	if err != nil {
		return fmt.Errorf("failed to open HID device: %w", err)
	}
	cm := newComms(port, c)
	cm.start()
	c.comms = cm
	c.logger.Info("Controller communication started", "address", c.identity.String())
	return nil
}

// Stop ends communication. Pending reports are discarded. Calling Stop on a
// stopped controller is a no-op.
func (c *Controller) Stop() {
	c.commsMu.Lock()
	cm := c.comms
	c.comms = nil
	c.commsMu.Unlock()
	if cm == nil {
		return
	}
	cm.stop(c.shutdownTimeout)
	c.logger.Info("Controller communication stopped", "address", c.identity.String())
}

// Set presses or releases a button. With flush, an input report carrying the
// new state is queued immediately.
func (c *Controller) Set(b Button, pressed bool, flush bool) {
	c.stateMu.Lock()
	c.state.Set(b, pressed)
	st := c.state
	c.stateMu.Unlock()
	if flush {
		c.sendInput(st)
	}
}

func (c *Controller) Press(b Button, flush bool)   { c.Set(b, true, flush) }
func (c *Controller) Release(b Button, flush bool) { c.Set(b, false, flush) }

// SetAxis stores a 16-bit stick value; the low 4 bits are discarded.
func (c *Controller) SetAxis(a Axis, value uint16, flush bool) {
	c.stateMu.Lock()
	c.state.SetAxis(a, value)
	st := c.state
	c.stateMu.Unlock()
	if flush {
		c.sendInput(st)
	}
}

// FlushInput queues an input report with the current state.
func (c *Controller) FlushInput() {
	c.sendInput(c.State())
}

func (c *Controller) LogState() {
	st := c.State()
	c.logger.Debug("Controller state", "address", c.identity.String(), "state", st.String())
}

// sendInput blocks while the outbound queue is full. Without running comms it
// does nothing.
func (c *Controller) sendInput(st InputState) {
	c.commsMu.Lock()
	cm := c.comms
	c.commsMu.Unlock()
	if cm == nil {
		return
	}
	cm.send(InputReport(c.tag.Next(), st))
}
