// Package scenario registers end-to-end wallet scenarios as stages.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/baseline"
	"github.com/ashleanichols/stacks-wallet/internal/config"
	"github.com/ashleanichols/stacks-wallet/internal/features"
	"github.com/ashleanichols/stacks-wallet/internal/fixture"
	"github.com/ashleanichols/stacks-wallet/internal/ledger"
	"github.com/ashleanichols/stacks-wallet/internal/network"
)

// Stage names of the restore wallet scenario, in run order.
const (
	StageResetConfig   = "Reset Config"
	StageLaunchApp     = "Launch App"
	StageRestoreWallet = "Restore Wallet"
	StageRevealAddress = "Reveal Address"
	StageCloseModal    = "Close Modal"
	StageResetWallet   = "Reset Wallet"
	StageTeardown      = "Teardown"
)

// Screenshot names, relative to the screenshot directory.
const (
	AddressScreenshot  = "restore-wallet-address.png"
	FinishedScreenshot = "finished-page.png"
)

// AfterCloseScreenshot is the checkpoint taken once the receive modal is closed.
func AfterCloseScreenshot(n network.Network) string {
	return fmt.Sprintf("restore-wallet/%s-after-close-stx-modal.png", n)
}

// ReferenceQR is the QR code of the address the receive modal should show.
func ReferenceQR(n network.Network) string {
	return fmt.Sprintf("restore-wallet/%s-expected-address-qr.png", n)
}

// LaunchFunc starts the application. It must honour dry run the way v1.LaunchApp does.
type LaunchFunc func(ctx context.Context, opts v1.AppOptions) *v1.App

// Deps are the collaborators of a scenario. Only Config is required.
type Deps struct {
	Config *config.Config
	// Launch defaults to v1.LaunchApp.
	Launch   LaunchFunc
	Ledger   *ledger.Ledger
	Baseline *baseline.Store

	// Phrase and Password default to the fixture wallet.
	Phrase   string
	Password string
}

// RestoreWallet is one registered restore wallet scenario.
type RestoreWallet struct {
	deps Deps

	mu      sync.Mutex
	net     network.Network
	address string
	failure string
	started time.Time

	ctx    context.Context
	cancel context.CancelFunc
	app    *v1.App
	window *v1.Window
	stub   *v1.MockServer
}

// RegisterRestoreWallet adds the restore wallet stages to t.
func RegisterRestoreWallet(t *v1.Tester, deps Deps) *RestoreWallet {
	if deps.Launch == nil {
		deps.Launch = v1.LaunchApp
	}
	if deps.Phrase == "" {
		deps.Phrase = fixture.SeedPhrase
	}
	if deps.Password == "" {
		deps.Password = fixture.Password
	}
	s := &RestoreWallet{deps: deps}

	t.OnStageResult(s.observe)

	t.Stage(StageResetConfig, s.resetConfig)
	t.Stage(StageLaunchApp, s.launch)
	t.Stage(StageRestoreWallet, s.restore)
	t.Stage(StageRevealAddress, s.revealAddress)
	t.Stage(StageCloseModal, s.closeModal)
	t.Stage(StageResetWallet, s.resetWallet)
	t.Finally(StageTeardown, s.teardown)
	return s
}

// Address returns the STX address read during the last run.
func (s *RestoreWallet) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Network returns the network of the last run.
func (s *RestoreWallet) Network() network.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net
}

// Failure describes the first failed stage of the last run, or is empty.
func (s *RestoreWallet) Failure() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

func (s *RestoreWallet) observe(res v1.StageResult) {
	if res.Passed() || errors.Is(res.Err, v1.ErrStageSkipped) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure == "" {
		s.failure = fmt.Sprintf("%s: %v", res.Name, res.Err)
	}
}

func (s *RestoreWallet) win() *v1.Window {
	if s.window == nil {
		v1.Fail("application is not launched, run %q first", StageLaunchApp)
	}
	return s.window
}

func (s *RestoreWallet) resetConfig() {
	s.mu.Lock()
	s.address, s.failure = "", ""
	s.started = time.Now()
	s.mu.Unlock()

	n, err := network.Current()
	if err != nil {
		v1.Fail("%v", err)
	}
	s.mu.Lock()
	s.net = n
	s.mu.Unlock()
	v1.Logf(v1.LogTypeInfo, "Running restore wallet on %s", n)

	if err := fixture.Validate(s.deps.Phrase); err != nil {
		v1.Fail("Recovery phrase rejected: %v", err)
	}
	v1.RemoveFile(s.deps.Config.ConfigFile())
}

func (s *RestoreWallet) launch() {
	// A relaunch replaces the previous instance; never leave it running.
	s.release()

	cfg := s.deps.Config
	s.ctx, s.cancel = context.WithTimeout(context.Background(), cfg.Timeout)

	opts := v1.AppOptions{
		Path:          cfg.AppPath,
		Args:          cfg.AppArgs,
		Dir:           cfg.AppDir,
		Env:           []string{network.EnvVar + "=" + s.net.String()},
		DebugPort:     cfg.DebugPort,
		UserDataDir:   cfg.ConfigDir,
		LaunchTimeout: cfg.LaunchTimeout,
		WaitTimeout:   cfg.WaitTimeout,
	}
	if cfg.StubAPIPort > 0 {
		s.stub = v1.RunMockServer(strconv.Itoa(cfg.StubAPIPort), StubAPIRoutes(s.net))
		opts.Env = append(opts.Env, cfg.StubAPIEnv+"="+s.stub.URL())
	}

	s.app = s.deps.Launch(s.ctx, opts)
	v1.Assert(s.app != nil, "launcher returned no application")
	s.window = s.app.FirstWindow()
}

func (s *RestoreWallet) restore() {
	features.InitSoftwareWallet(s.win(), s.deps.Phrase, s.deps.Password)
}

func (s *RestoreWallet) revealAddress() {
	w := s.win()
	w.WaitFor(features.SettingsPageSelector)

	addr := features.NewHome(w).RevealStxAddress(s.deps.Password)
	w.Screenshot(s.deps.Config.Screenshot(AddressScreenshot))

	s.mu.Lock()
	s.address = addr
	s.mu.Unlock()

	v1.ExpectEqual("STX address", fixture.ExpectedAddress(s.net), addr)
	if s.deps.Baseline != nil {
		s.deps.Baseline.Check(s.net, addr)
	}
}

func (s *RestoreWallet) closeModal() {
	w := s.win()
	features.NewHome(w).CloseReceiveModal()
	w.Screenshot(s.deps.Config.Screenshot(AfterCloseScreenshot(s.net)))

	s.writeReferenceQR(s.deps.Config.Screenshot(ReferenceQR(s.net)))
}

func (s *RestoreWallet) writeReferenceQR(path string) {
	v1.RecordAction(fmt.Sprintf("Reference QR: %s", path), func() { s.writeReferenceQR(path) })
	if v1.IsDryRun() {
		return
	}
	if err := fixture.WriteReferenceQR(s.net, path); err != nil {
		v1.Log(v1.LogTypeFile, "Could not write reference QR", err.Error())
		return
	}
	v1.Log(v1.LogTypeFile, fmt.Sprintf("Saved %s", path), "")
}

func (s *RestoreWallet) resetWallet() {
	w := s.win()
	features.ResetWallet(w)
	v1.Sleep(s.deps.Config.SettleDelay)
	w.Screenshot(s.deps.Config.Screenshot(FinishedScreenshot))
}

// teardown closes whatever the run opened and records the run.
func (s *RestoreWallet) teardown() {
	s.release()
	if s.deps.Ledger != nil {
		s.recordRun()
	}
}

// release closes the application, the stub API and the run context.
// App.Close tears down at most once.
func (s *RestoreWallet) release() {
	if s.app != nil {
		s.app.Close()
	}
	s.stub.Stop()
	if s.cancel != nil {
		s.cancel()
	}
	s.app, s.window, s.stub, s.cancel = nil, nil, nil, nil
}

func (s *RestoreWallet) recordRun() {
	v1.RecordAction("Ledger Record", s.recordRun)
	if v1.IsDryRun() {
		return
	}
	s.mu.Lock()
	run := ledger.Run{
		StartedAt: s.started,
		Network:   s.net,
		Address:   s.address,
		Status:    ledger.StatusPassed,
		Failure:   s.failure,
		Duration:  time.Since(s.started),
	}
	s.mu.Unlock()
	if run.Failure != "" {
		run.Status = ledger.StatusFailed
	}
	if err := s.deps.Ledger.Record(run); err != nil {
		v1.Log(v1.LogTypeLedger, "Could not record run", err.Error())
	}
}
