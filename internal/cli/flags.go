package cli

import (
	"os"

	"github.com/ashleanichols/stacks-wallet/internal/config"
	"github.com/ashleanichols/stacks-wallet/internal/network"
)

// Flags holds command-line flags shared by every command.
type Flags struct {
	EnvFile     string
	Network     string
	Screenshots string
	NoLedger    bool
	Limit       int
}

// apply exports the network for the wallet and the runner and overrides cfg
// with the flags that were set.
func (f *Flags) apply(cfg *config.Config) error {
	if f.Network != "" {
		n, err := network.Parse(f.Network)
		if err != nil {
			return err
		}
		if err := os.Setenv(network.EnvVar, n.String()); err != nil {
			return err
		}
	}
	if f.Screenshots != "" {
		cfg.ScreenshotDir = f.Screenshots
	}
	return nil
}
