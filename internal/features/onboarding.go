package features

import (
	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"
)

// InitSoftwareWallet walks the onboarding flow, restoring a software wallet
// from phrase and protecting it with password. Callers wait for
// SettingsPageSelector to know the home screen has rendered.
func InitSoftwareWallet(w *v1.Window, phrase, password string) {
	v1.Log(v1.LogTypeUI, "Restoring software wallet", "")

	w.WaitFor(WelcomePage)
	w.Click(GetStartedBtn)
	w.Click(RestoreSoftwareWallet)

	w.Fill(SecretKeyInput, phrase)
	w.Click(SecretKeyContinueBtn)

	w.Fill(PasswordInput, password)
	w.Fill(PasswordConfirmInput, password)
	w.Click(PasswordContinueBtn)
}
