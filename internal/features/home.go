package features

import (
	"sort"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"
)

// Home addresses the home screen's elements by name, e.g. "receiveStxBtn".
type Home struct {
	w *v1.Window
}

// NewHome binds the home screen to a window.
func NewHome(w *v1.Window) *Home {
	return &Home{w: w}
}

// Elements lists the names Home understands.
func Elements() []string {
	names := make([]string, 0, len(homeElements))
	for name := range homeElements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Selector resolves name. An unknown name fails the stage.
func (h *Home) Selector(name string) string {
	sel, ok := homeElements[name]
	if !ok {
		v1.Fail("unknown home element %q", name)
	}
	return sel
}

func (h *Home) Click(name string) {
	h.w.Click(h.Selector(name))
}

func (h *Home) WaitFor(name string) {
	h.w.WaitFor(h.Selector(name))
}

func (h *Home) Text(name string) string {
	return h.w.Text(h.Selector(name))
}

// FillPasswordInput types the wallet password into the reveal prompt.
func (h *Home) FillPasswordInput(password string) {
	h.w.Fill(h.Selector("revealStxPasswordInput"), password)
}

// RevealStxAddress opens the receive modal, unlocks it with password and
// returns the displayed STX address.
func (h *Home) RevealStxAddress(password string) string {
	h.Click("receiveStxBtn")
	h.FillPasswordInput(password)
	h.Click("revealStxAddressBtn")
	h.WaitFor("stxAddressText")
	return h.Text("stxAddressText")
}

// CloseReceiveModal closes the receive modal.
func (h *Home) CloseReceiveModal() {
	h.Click("receiveStxModalCloseBtn")
}
