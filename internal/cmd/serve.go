package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanjay900/procon-gadget/device/procon"
	"github.com/sanjay900/procon-gadget/internal/log"
)

// Colors are rrggbb hex strings; empty grips are reported as black.
type Colors struct {
	Body      string `help:"Body color (rrggbb)" default:"323232" env:"PROCON_GADGET_COLOR_BODY"`
	Buttons   string `help:"Button color (rrggbb)" default:"ffffff" env:"PROCON_GADGET_COLOR_BUTTONS"`
	LeftGrip  string `help:"Left grip color (rrggbb)" env:"PROCON_GADGET_COLOR_LEFT_GRIP"`
	RightGrip string `help:"Right grip color (rrggbb)" env:"PROCON_GADGET_COLOR_RIGHT_GRIP"`
}

type Serve struct {
	Device          string        `help:"HID gadget device to read console requests from" default:"/dev/hidg0" env:"PROCON_GADGET_DEVICE"`
	WriteDevice     string        `help:"Separate device for outbound reports (defaults to --device)" env:"PROCON_GADGET_WRITE_DEVICE"`
	Address         string        `help:"Fixed link address, e.g. 98:b6:e9:12:34:56" env:"PROCON_GADGET_ADDRESS"`
	AddressSeed     string        `help:"Derive a stable link address from this seed" env:"PROCON_GADGET_ADDRESS_SEED"`
	Colors          Colors        `embed:"" prefix:"color."`
	PollInterval    time.Duration `help:"Upper bound on a single device read" default:"100ms" env:"PROCON_GADGET_POLL_INTERVAL"`
	ShutdownTimeout time.Duration `help:"How long to wait for the device workers on shutdown" default:"2s" env:"PROCON_GADGET_SHUTDOWN_TIMEOUT"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartController(ctx, logger, rawLogger)
}

// Options turns the command flags into controller options.
func (s *Serve) Options() (*procon.CreateOptions, error) {
	o := &procon.CreateOptions{
		Device:          s.Device,
		WriteDevice:     s.WriteDevice,
		PollInterval:    s.PollInterval,
		ShutdownTimeout: s.ShutdownTimeout,
	}

	switch {
	case s.Address != "" && s.AddressSeed != "":
		return nil, fmt.Errorf("--address and --address-seed are mutually exclusive")
	case s.Address != "":
		a, err := procon.ParseAddress(s.Address)
		if err != nil {
			return nil, err
		}
		o.Address = &a
	case s.AddressSeed != "":
		a, err := procon.DeriveAddress(s.AddressSeed)
		if err != nil {
			return nil, err
		}
		o.Address = &a
	}

	var err error
	if o.BodyColor, err = optionalColor(s.Colors.Body); err != nil {
		return nil, err
	}
	if o.ButtonColor, err = optionalColor(s.Colors.Buttons); err != nil {
		return nil, err
	}
	if o.LeftGripColor, err = optionalColor(s.Colors.LeftGrip); err != nil {
		return nil, err
	}
	if o.RightGripColor, err = optionalColor(s.Colors.RightGrip); err != nil {
		return nil, err
	}
	return o, nil
}

func optionalColor(s string) (*procon.Color, error) {
	if s == "" {
		return nil, nil
	}
	c, err := procon.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// StartController runs one emulated controller until ctx is cancelled.
func (s *Serve) StartController(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	opts, err := s.Options()
	if err != nil {
		return err
	}
	c, err := procon.New(opts, logger, rawLogger)
	if err != nil {
		return err
	}

	logger.Info("Starting controller emulation", "device", s.Device, "writeDevice", s.WriteDevice, "address", c.Identity().String())
	if err := c.StartComms(); err != nil {
		return err
	}

	<-ctx.Done()
	c.LogState()
	c.Stop()
	return nil
}
