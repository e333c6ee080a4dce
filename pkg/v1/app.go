package v1

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// AppOptions describes how to start the application under test.
type AppOptions struct {
	Path string
	Args []string
	// Env is appended to the runner's own environment.
	Env []string
	Dir string

	// The remaining fields are only used by LaunchApp.
	DebugPort     int
	UserDataDir   string
	LaunchTimeout time.Duration
	WaitTimeout   time.Duration
}

// AppServer represents a running application process.
type AppServer struct {
	cmd  *exec.Cmd
	once sync.Once
}

// RunAppServer runs the application with the given arguments.
func RunAppServer(path string, args ...string) *AppServer {
	return RunApp(AppOptions{Path: path, Args: args})
}

// RunApp starts the application described by opts. Failing to start is fatal to the stage.
func RunApp(opts AppOptions) *AppServer {
	RecordAction(fmt.Sprintf("App Start: %s", opts.Path), func() { RunApp(opts) })
	if IsDryRun() {
		return &AppServer{}
	}
	s, err := startApp(opts)
	if err != nil {
		Fail("Failed to start application %s: %v", opts.Path, err)
	}
	return s
}

func startApp(opts AppOptions) (*AppServer, error) {
	cmd := exec.Command(opts.Path, opts.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	Log(LogTypeApp, fmt.Sprintf("Starting: %s", opts.Path), strings.Join(opts.Args, " "))
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	Logf(LogTypeApp, "Started pid %d", cmd.Process.Pid)

	return &AppServer{cmd: cmd}, nil
}

// Pid returns the process id, or 0 when nothing was started.
func (s *AppServer) Pid() int {
	if s == nil || s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Stop kills the process and reaps it. Only the first call has an effect.
func (s *AppServer) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cmd == nil || s.cmd.Process == nil {
			return
		}
		Logf(LogTypeApp, "Stopping pid %d", s.cmd.Process.Pid)
		s.cmd.Process.Kill()
		s.cmd.Wait() // release resources
	})
}

// App is a launched application together with its first window.
type App struct {
	window *Window
	stop   func()

	once   sync.Once
	closes int
	mu     sync.Mutex
}

// NewApp assembles an App from an attached window and a function that ends the process.
func NewApp(window *Window, stop func()) *App {
	return &App{window: window, stop: stop}
}

// FirstWindow returns the window the application opened first.
func (a *App) FirstWindow() *Window {
	return a.window
}

// Close detaches from the window and stops the process.
// It is safe to call more than once; teardown happens on the first call only.
func (a *App) Close() {
	RecordAction("App Close", func() { a.Close() })
	if IsDryRun() || a == nil {
		return
	}
	a.once.Do(func() {
		a.mu.Lock()
		a.closes++
		a.mu.Unlock()

		Log(LogTypeApp, "Closing application", "")
		if a.window != nil {
			a.window.close()
		}
		if a.stop != nil {
			a.stop()
		}
	})
}

// Teardowns reports how many times Close actually tore the application down.
func (a *App) Teardowns() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closes
}
