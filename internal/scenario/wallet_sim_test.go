package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ashleanichols/stacks-wallet/internal/fixture"
	"github.com/ashleanichols/stacks-wallet/internal/network"
)

func dt(id string) string { return fmt.Sprintf(`[data-test="%s"]`, id) }

// screens maps each wallet screen to the elements it renders.
var screens = map[string][]string{
	"welcome":  {dt("onboarding-welcome"), dt("btn-get-started")},
	"choose":   {dt("btn-restore-software-wallet")},
	"restore":  {dt("input-secret-key"), dt("btn-continue-from-restore")},
	"password": {dt("input-password"), dt("input-password-confirm"), dt("btn-continue-from-password")},
	"home":     {dt("settings-page-link"), dt("btn-receive-stx")},
	"receive":  {dt("settings-page-link"), dt("input-reveal-stx-password"), dt("btn-reveal-stx-address"), dt("btn-close-receive-stx-modal")},
	"settings": {dt("settings-page-link"), dt("settings-page"), dt("btn-reset-wallet")},
	"reset":    {dt("modal-reset-wallet"), dt("btn-confirm-reset-wallet")},
}

var errNotVisible = errors.New("element is not visible")

type walletState struct {
	Phrase   string `json:"phrase"`
	Password string `json:"password"`
}

// walletSim imitates the wallet's rendered screens. It persists its state in
// config.json below the config directory, like the real application.
type walletSim struct {
	mu         sync.Mutex
	configFile string
	net        network.Network

	screen   string
	revealed bool
	inputs   map[string]string
	state    walletState

	// wrongAddress, when set, is shown instead of the derived address.
	wrongAddress string
	// startedConfigured records whether the app found a wallet on launch.
	startedConfigured bool
	closed            int
}

func newWalletSim(configDir string) *walletSim {
	n, err := network.Current()
	if err != nil {
		n = network.Testnet
	}
	s := &walletSim{
		configFile: filepath.Join(configDir, "config.json"),
		net:        n,
		screen:     "welcome",
		inputs:     map[string]string{},
	}
	if data, err := os.ReadFile(s.configFile); err == nil && json.Unmarshal(data, &s.state) == nil {
		s.screen = "home"
		s.startedConfigured = true
	}
	return s
}

func (s *walletSim) isVisible(selector string) bool {
	if s.screen == "receive" && s.revealed && selector == dt("text-stx-address") {
		return true
	}
	for _, sel := range screens[s.screen] {
		if sel == selector {
			return true
		}
	}
	return false
}

// Visible reports whether selector is on screen right now.
func (s *walletSim) Visible(selector string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isVisible(selector)
}

func (s *walletSim) Screen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *walletSim) check(selector string) error {
	if s.closed > 0 {
		return errors.New("target closed")
	}
	if !s.isVisible(selector) {
		return fmt.Errorf("%s: %w", selector, errNotVisible)
	}
	return nil
}

func (s *walletSim) WaitVisible(ctx context.Context, selector string) error {
	s.mu.Lock()
	err := s.check(selector)
	s.mu.Unlock()
	if err == nil {
		return nil
	}
	// Nothing changes the screen while waiting.
	<-ctx.Done()
	return ctx.Err()
}

func (s *walletSim) Click(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(selector); err != nil {
		return err
	}

	switch selector {
	case dt("btn-get-started"):
		s.screen = "choose"
	case dt("btn-restore-software-wallet"):
		s.screen = "restore"
	case dt("btn-continue-from-restore"):
		if len(strings.Fields(s.inputs[dt("input-secret-key")])) == fixture.SeedWords {
			s.screen = "password"
		}
	case dt("btn-continue-from-password"):
		pw := s.inputs[dt("input-password")]
		if pw == "" || pw != s.inputs[dt("input-password-confirm")] {
			return nil
		}
		s.state = walletState{Phrase: s.inputs[dt("input-secret-key")], Password: pw}
		data, _ := json.Marshal(s.state)
		if err := os.WriteFile(s.configFile, data, 0o600); err != nil {
			return err
		}
		s.screen = "home"
	case dt("btn-receive-stx"):
		s.screen, s.revealed = "receive", false
	case dt("btn-reveal-stx-address"):
		s.revealed = s.inputs[dt("input-reveal-stx-password")] == s.state.Password
	case dt("btn-close-receive-stx-modal"):
		s.screen = "home"
	case dt("settings-page-link"):
		s.screen = "settings"
	case dt("btn-reset-wallet"):
		s.screen = "reset"
	case dt("btn-confirm-reset-wallet"):
		if err := os.Remove(s.configFile); err != nil {
			return err
		}
		s.state = walletState{}
		s.inputs = map[string]string{}
		s.screen = "welcome"
	}
	return nil
}

func (s *walletSim) Fill(ctx context.Context, selector, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(selector); err != nil {
		return err
	}
	s.inputs[selector] = text
	return nil
}

func (s *walletSim) TextContent(ctx context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(selector); err != nil {
		return "", err
	}
	if selector != dt("text-stx-address") {
		return "", nil
	}
	if s.wrongAddress != "" {
		return s.wrongAddress, nil
	}
	if s.state.Phrase == fixture.SeedPhrase {
		return fixture.ExpectedAddress(s.net), nil
	}
	return "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0", nil
}

func (s *walletSim) Screenshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed > 0 {
		return nil, errors.New("target closed")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *walletSim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *walletSim) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
