package cmd

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/sanjay900/procon-gadget/device"
	"github.com/sanjay900/procon-gadget/internal/log"

	"golang.org/x/term"
)

// Fake plays the console side over a FIFO pair. The controller reads
// <base>.out and writes <base>.in, e.g.
//
//	procon-gadget serve --device procon.out --write-device procon.in
type Fake struct {
	Base string `help:"Base path of the FIFO pair" default:"procon" env:"PROCON_GADGET_FAKE_BASE"`
}

// Run is called by Kong when the fake command is executed.
func (f *Fake) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	prompt := term.IsTerminal(int(os.Stdin.Fd()))
	return f.RunConsole(ctx, os.Stdin, os.Stdout, prompt, logger, rawLogger)
}

func (f *Fake) Paths() (in, out string) {
	return f.Base + ".in", f.Base + ".out"
}

// RunConsole forwards hex lines from r to the controller and prints its
// replies to w. An empty line or ctx cancellation ends the session.
func (f *Fake) RunConsole(ctx context.Context, r io.Reader, w io.Writer, prompt bool, logger *slog.Logger, rawLogger log.RawLogger) error {
	inPath, outPath := f.Paths()
	if err := device.MakeFIFO(inPath); err != nil {
		return err
	}
	defer os.Remove(inPath)
	if err := device.MakeFIFO(outPath); err != nil {
		return err
	}
	defer os.Remove(outPath)

	port, err := device.Open(inPath, outPath)
	if err != nil {
		return err
	}
	defer port.Close()
	logger.Info("Fake console ready", "controllerReads", outPath, "controllerWrites", inPath)

	out := &syncWriter{w: w}
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := port.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			rawLogger.Log(false, buf[:n])
			out.printf("recv: % x\n", trimPadding(buf[:n]))
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		if prompt {
			out.printf("> ")
		}
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			return nil
		}

		data, err := parseHexLine(line)
		if err != nil {
			out.printf("invalid input %q: %v\n", line, err)
			continue
		}
		rawLogger.Log(true, data)
		if _, err := port.Write(data); err != nil {
			logger.Error("failed to write request", "error", err)
		}
	}
}

// parseHexLine accepts "8001", "80 01" or "80:01".
func parseHexLine(line string) ([]byte, error) {
	line = strings.NewReplacer(" ", "", ":", "").Replace(line)
	return hex.DecodeString(line)
}

func trimPadding(b []byte) []byte {
	end := len(b)
	for end > 2 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, format, args...)
}
