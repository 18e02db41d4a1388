package ssr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
	"unicode/utf8"
)

// ProcessConfig describes how to launch the renderer process.
type ProcessConfig struct {
	// Script is the path to the renderer bundle (the SSR build output).
	Script string

	// BaseURL is the address the renderer listens on once up. Defaults to
	// DefaultBaseURL; the shutdown endpoint lives on the same base.
	BaseURL string

	// Runtime is the JavaScript runtime binary. Defaults to "node".
	Runtime string

	// Dir is the working directory for the process. Empty means inherit.
	Dir string

	// Env is the process environment. Nil means inherit.
	Env []string

	// Stdout and Stderr receive the renderer's output. Nil means the
	// parent's stdout/stderr.
	Stdout io.Writer
	Stderr io.Writer

	// StopGrace bounds how long Stop waits for the process to exit after a
	// graceful shutdown request before killing it. Defaults to 5s.
	StopGrace time.Duration

	// Logger receives lifecycle events. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultProcessConfig returns the stock renderer process settings.
func DefaultProcessConfig() ProcessConfig {
	return ProcessConfig{
		BaseURL:   DefaultBaseURL,
		Runtime:   "node",
		StopGrace: 5 * time.Second,
	}
}

// Process is the handle to a running renderer: the OS process plus the
// base address it serves. Created once at startup, stopped exactly once at
// shutdown; never cloned.
type Process struct {
	cmd    *exec.Cmd
	client *Client
	logger *slog.Logger
	grace  time.Duration

	stopOnce sync.Once
	waitCh   chan error
	exited   chan struct{}
}

// StartProcess launches the renderer. It fails when the script path is
// missing or not valid text, or when the runtime cannot be spawned (for
// example, node is not installed). All failures wrap ErrProcess.
func StartProcess(cfg ProcessConfig) (*Process, error) {
	def := DefaultProcessConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Runtime == "" {
		cfg.Runtime = def.Runtime
	}
	if cfg.StopGrace <= 0 {
		cfg.StopGrace = def.StopGrace
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	logger := cfg.Logger.With("component", "ssr")

	if cfg.Script == "" {
		return nil, fmt.Errorf("%w: no renderer script configured", ErrProcess)
	}
	if !utf8.ValidString(cfg.Script) {
		return nil, fmt.Errorf("%w: script path is not valid text", ErrProcess)
	}
	if _, err := os.Stat(cfg.Script); err != nil {
		return nil, fmt.Errorf("%w: renderer script not found at %s: %v", ErrProcess, cfg.Script, err)
	}

	cmd := exec.Command(cfg.Runtime, cfg.Script)
	cmd.Dir = cfg.Dir
	cmd.Env = cfg.Env
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: spawn %s: %v", ErrProcess, cfg.Runtime, err)
	}

	p := &Process{
		cmd:    cmd,
		client: NewClient(cfg.BaseURL),
		logger: logger,
		grace:  cfg.StopGrace,
		waitCh: make(chan error, 1),
		exited: make(chan struct{}),
	}
	go func() {
		p.waitCh <- cmd.Wait()
		close(p.exited)
	}()

	logger.Info("renderer process started",
		"pid", cmd.Process.Pid,
		"script", cfg.Script,
		"addr", cfg.BaseURL)
	return p, nil
}

// Pid returns the renderer's OS process id.
func (p *Process) Pid() int { return p.cmd.Process.Pid }

// BaseURL returns the address the renderer serves.
func (p *Process) BaseURL() string { return p.client.BaseURL() }

// WaitReady polls the renderer's health endpoint until it answers. It
// returns early when the process exits or ctx is done, so a crashed
// renderer fails startup instead of hanging the first render.
func (p *Process) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, time.Second)
		err := p.client.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: renderer not ready: %v", ErrProcess, ctx.Err())
		case <-p.exited:
			return fmt.Errorf("%w: renderer exited before becoming ready", ErrProcess)
		case <-ticker.C:
		}
	}
}

// Stop shuts the renderer down: first a graceful HTTP shutdown request,
// then a forced kill if the request fails or the process outlives the
// grace period. Safe to call more than once; only the first call acts.
//
// Call Stop only after the serving listener has stopped accepting
// requests, so no in-flight SSR call can race the shutdown.
func (p *Process) Stop(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() { err = p.stop(ctx) })
	return err
}

func (p *Process) stop(ctx context.Context) error {
	if err := p.client.Shutdown(ctx); err != nil {
		p.logger.Warn("graceful renderer shutdown failed, killing process", "error", err)
		if kerr := p.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			<-p.waitCh
			return fmt.Errorf("ssr: kill renderer: %w", kerr)
		}
		<-p.waitCh
		p.logger.Info("renderer process killed", "pid", p.cmd.Process.Pid)
		return nil
	}

	select {
	case <-p.waitCh:
		p.logger.Info("renderer process exited", "pid", p.cmd.Process.Pid)
		return nil
	case <-time.After(p.grace):
		p.logger.Warn("renderer ignored shutdown request, killing process", "pid", p.cmd.Process.Pid)
		_ = p.cmd.Process.Kill()
		<-p.waitCh
		return nil
	}
}
