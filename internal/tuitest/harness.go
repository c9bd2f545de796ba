// Package tuitest drives the bookdeck binary inside a pseudo terminal and
// records what it paints.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 40
	defaultTimeout = 10 * time.Second
)

// Step is a scripted keystroke sequence written after Delay.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Type builds a step that types text after delay.
func Type(delay time.Duration, text string) Step {
	return Step{Delay: delay, Input: []byte(text)}
}

// Press builds a step that sends one key after delay.
func Press(delay time.Duration, key []byte) Step {
	return Step{Delay: delay, Input: key}
}

// Config configures how the harness spawns and drives the CLI program.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	ExitCode int
	Duration time.Duration
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

// Run executes the configured command inside a PTY, replays the scripted
// inputs and captures every byte written to the terminal.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	width, height, timeout := cfg.Width, cfg.Height, cfg.Timeout
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	output := &syncBuffer{}
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		responder := newTerminalResponder(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				responder.Process(buf[:n])
				_, _ = output.Write(buf[:n])
			}
			if readErr != nil {
				return
			}
		}
	}()

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	start := time.Now()
	exited := false
	var exitErr error
script:
	for _, step := range cfg.Steps {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("tuitest: context cancelled before script finished: %w", ctx.Err())
		case exitErr = <-waitErr:
			exited = true
			break script
		case <-time.After(step.Delay):
		}
		if len(step.Input) > 0 {
			if _, err := ptmx.Write(step.Input); err != nil {
				return nil, fmt.Errorf("tuitest: write input: %w", err)
			}
		}
	}

	if !exited {
		select {
		case exitErr = <-waitErr:
		case <-ctx.Done():
			return nil, fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
		}
	}

	code, err := exitCode(exitErr, cfg)
	if err != nil {
		return nil, err
	}

	_ = ptmx.Close()
	<-copyDone

	raw := output.Bytes()
	return &Recording{
		Raw:      raw,
		Frames:   parseFrames(raw),
		ExitCode: code,
		Duration: time.Since(start),
	}, nil
}

func exitCode(err error, cfg Config) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		for _, allowed := range cfg.AllowedExitCodes {
			if allowed == code {
				return code, nil
			}
		}
		if cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt") {
			return code, nil
		}
	}
	return 0, fmt.Errorf("tuitest: program exited with error: %w", err)
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyEsc dismisses alerts and quits from the form.
	KeyEsc = []byte{27}
	KeyTab = []byte{'\t'}

	KeyLeft  = []byte("\x1b[D")
	KeyRight = []byte("\x1b[C")
	KeyUp    = []byte("\x1b[A")
	KeyDown  = []byte("\x1b[B")
)
