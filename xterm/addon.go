package xterm

import (
	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/disposable"
)

// Addon extends a terminal. Activate is called once by Terminal.LoadAddon;
// Dispose is called when the terminal is disposed.
type Addon interface {
	disposable.Disposer
	Activate(term Terminal) error
}

// JSAddon is an addon implemented in JS.
type JSAddon struct{ bridge.Ref }

// Activate calls the addon's activate method.
func (a JSAddon) Activate(term Terminal) error {
	_, err := a.Call("activate", term.Object())
	return err
}

// Dispose calls the addon's dispose method.
func (a JSAddon) Dispose() error {
	_, err := a.Call("dispose")
	return err
}

// AddonCapability describes ITerminalAddon.
var AddonCapability = bridge.Define[Addon]("ITerminalAddon",
	func(r bridge.Ref) JSAddon { return JSAddon{r} },
	bridge.Extends(disposable.Capability))
