// Package config holds the root command-line/configuration model.
package config

import "github.com/sanjay900/procon-gadget/internal/cmd"

// Log configures the process loggers.
type Log struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"PROCON_GADGET_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of stdout/stderr" env:"PROCON_GADGET_LOG_FILE"`
	RawFile string `help:"Dump every HID report to this file" env:"PROCON_GADGET_LOG_RAW_FILE"`
}

// CLI is the root kong model.
type CLI struct {
	Config string `help:"Configuration file (json, yaml or toml)" type:"path" env:"PROCON_GADGET_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Serve     cmd.Serve         `cmd:"" help:"Emulate a controller on a HID gadget device"`
	Fake      cmd.Fake          `cmd:"" help:"Act as the console on a FIFO pair for testing without hardware"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
