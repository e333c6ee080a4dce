// Package features drives the wallet's screens through their data-test selectors.
package features

import "fmt"

func dataTest(id string) string {
	return fmt.Sprintf(`[data-test="%s"]`, id)
}

// Onboarding screens.
var (
	WelcomePage           = dataTest("onboarding-welcome")
	GetStartedBtn         = dataTest("btn-get-started")
	RestoreSoftwareWallet = dataTest("btn-restore-software-wallet")
	SecretKeyInput        = dataTest("input-secret-key")
	SecretKeyContinueBtn  = dataTest("btn-continue-from-restore")
	PasswordInput         = dataTest("input-password")
	PasswordConfirmInput  = dataTest("input-password-confirm")
	PasswordContinueBtn   = dataTest("btn-continue-from-password")
)

// Settings and reset.
var (
	// SettingsPageSelector is visible once the wallet is configured and the home
	// screen has rendered.
	SettingsPageSelector  = dataTest("settings-page-link")
	SettingsPage          = dataTest("settings-page")
	ResetWalletBtn        = dataTest("btn-reset-wallet")
	ResetWalletModal      = dataTest("modal-reset-wallet")
	ConfirmResetWalletBtn = dataTest("btn-confirm-reset-wallet")
)

// homeElements names the home screen elements scenarios address by name.
var homeElements = map[string]string{
	"receiveStxBtn":           dataTest("btn-receive-stx"),
	"revealStxPasswordInput":  dataTest("input-reveal-stx-password"),
	"revealStxAddressBtn":     dataTest("btn-reveal-stx-address"),
	"stxAddressText":          dataTest("text-stx-address"),
	"receiveStxModalCloseBtn": dataTest("btn-close-receive-stx-modal"),
}
