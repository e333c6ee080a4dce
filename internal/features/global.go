package features

import (
	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"
)

// ResetWallet opens settings and wipes the wallet, leaving the app on the
// onboarding welcome screen.
func ResetWallet(w *v1.Window) {
	v1.Log(v1.LogTypeUI, "Resetting wallet", "")

	w.Click(SettingsPageSelector)
	w.WaitFor(SettingsPage)
	w.Click(ResetWalletBtn)
	w.WaitFor(ResetWalletModal)
	w.Click(ConfirmResetWalletBtn)
	w.WaitFor(WelcomePage)
}
