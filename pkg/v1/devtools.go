package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultDebugPort is the DevTools port handed to the application when none is set.
	DefaultDebugPort = 9222
	// DefaultLaunchTimeout bounds the time between process start and the first window.
	DefaultLaunchTimeout = 60 * time.Second

	discoveryInterval = 250 * time.Millisecond
)

var errNoWindow = errors.New("no application window yet")

// devtoolsTarget is one entry of the DevTools /json/list endpoint.
type devtoolsTarget struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type devtoolsVersion struct {
	Browser              string `json:"Browser"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// firstWindow picks the first page target that is not a DevTools window itself.
func firstWindow(targets []devtoolsTarget) (devtoolsTarget, bool) {
	for _, t := range targets {
		if t.Type != "page" || strings.HasPrefix(t.URL, "devtools://") {
			continue
		}
		return t, true
	}
	return devtoolsTarget{}, false
}

// discoverFirstWindow polls the DevTools HTTP endpoint until the browser websocket
// and a first window are available.
func discoverFirstWindow(ctx context.Context, endpoint string) (wsURL string, target devtoolsTarget, err error) {
	err = Poll(ctx, discoveryInterval, func() (bool, error) {
		if wsURL == "" {
			resp, err := TryRequest(endpoint + "/json/version")
			if err != nil {
				return false, err
			}
			var v devtoolsVersion
			if err := json.Unmarshal([]byte(resp.Body), &v); err != nil {
				return false, fmt.Errorf("decode /json/version: %w", err)
			}
			if v.WebSocketDebuggerURL == "" {
				return false, errors.New("no webSocketDebuggerUrl in /json/version")
			}
			wsURL = v.WebSocketDebuggerURL
		}

		resp, err := TryRequest(endpoint + "/json/list")
		if err != nil {
			return false, err
		}
		var targets []devtoolsTarget
		if err := json.Unmarshal([]byte(resp.Body), &targets); err != nil {
			return false, fmt.Errorf("decode /json/list: %w", err)
		}
		t, ok := firstWindow(targets)
		if !ok {
			return false, errNoWindow
		}
		target = t
		return true, nil
	})
	return wsURL, target, err
}

// LaunchApp starts the application with remote debugging enabled, waits for its
// first window and attaches to it. ctx bounds the lifetime of the returned App.
// A launch that does not produce a window within opts.LaunchTimeout is fatal.
func LaunchApp(ctx context.Context, opts AppOptions) *App {
	RecordAction(fmt.Sprintf("App Launch: %s", opts.Path), func() { LaunchApp(ctx, opts) })
	if IsDryRun() {
		return NewApp(&Window{}, nil)
	}

	if opts.DebugPort == 0 {
		opts.DebugPort = DefaultDebugPort
	}
	if opts.LaunchTimeout <= 0 {
		opts.LaunchTimeout = DefaultLaunchTimeout
	}
	args := append([]string{}, opts.Args...)
	args = append(args, fmt.Sprintf("--remote-debugging-port=%d", opts.DebugPort))
	if opts.UserDataDir != "" {
		args = append(args, "--user-data-dir="+opts.UserDataDir)
	}
	launch := opts
	launch.Args = args

	// Discovery would attach to whatever answers on the port.
	endpoint := fmt.Sprintf("http://127.0.0.1:%d", opts.DebugPort)
	if _, err := TryRequest(endpoint + "/json/version"); err == nil {
		Fail("DevTools port %d is already in use by another browser or application", opts.DebugPort)
	}

	server, err := startApp(launch)
	if err != nil {
		Fail("Failed to start application %s: %v", opts.Path, err)
	}

	launchCtx, cancel := context.WithTimeout(ctx, opts.LaunchTimeout)
	defer cancel()

	wsURL, target, err := discoverFirstWindow(launchCtx, endpoint)
	if err != nil {
		server.Stop()
		Fail("Application window did not appear on %s: %v", endpoint, err)
	}
	Log(LogTypeApp, fmt.Sprintf("First window %q", target.Title), target.URL)

	driver, err := attachCDP(ctx, wsURL, target.ID)
	if err != nil {
		server.Stop()
		Fail("Failed to attach to window %s: %v", target.ID, err)
	}

	return NewApp(NewWindow(ctx, driver, opts.WaitTimeout), server.Stop)
}
