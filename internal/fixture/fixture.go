// Package fixture holds the wallet the restore scenario reconstructs.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/tyler-smith/go-bip39"

	"github.com/ashleanichols/stacks-wallet/internal/network"
)

const (
	// Password encrypts the restored wallet and unlocks the address reveal.
	Password = "hello9*&^*^*dkfskjdfskljdfsj"

	// SeedPhrase is the 24-word recovery phrase of the fixture wallet.
	SeedPhrase = "across okay clerk forum chief law around nuclear vacuum miss brown predict mushroom fix west quit mother afford bamboo neutral pioneer crime open call"

	// SeedWords is the only phrase length the wallet accepts for a restore.
	SeedWords = 24
)

var expectedAddress = network.Choice[string]{
	Testnet: "ST28VRDJ3TMB268BRMZXTJJ6Q4PABH108QNY5BSK1",
	Mainnet: "SP28VRDJ3TMB268BRMZXTJJ6Q4PABH108QM9GH8JG",
}

// ExpectedAddress is the STX address the fixture wallet shows on n.
func ExpectedAddress(n network.Network) string {
	return network.When(n, expectedAddress)
}

// Validate checks that phrase is a well-formed 24-word BIP-39 mnemonic.
func Validate(phrase string) error {
	words := strings.Fields(phrase)
	if len(words) != SeedWords {
		return fmt.Errorf("recovery phrase has %d words, want %d", len(words), SeedWords)
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return errors.New("recovery phrase is not a valid BIP-39 mnemonic")
	}
	return nil
}

// WriteReferenceQR writes a PNG QR code of n's expected address to path.
// It is the image the receive modal should show.
func WriteReferenceQR(n network.Network, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return qrcode.WriteFile(ExpectedAddress(n), qrcode.Medium, 256, path)
}
