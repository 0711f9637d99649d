package xterm

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/readonly"
)

// WideCharacterWidth is the number of cells a codepoint occupies.
type WideCharacterWidth int

const (
	WidthZero   WideCharacterWidth = 0
	WidthNarrow WideCharacterWidth = 1
	WidthWide   WideCharacterWidth = 2
)

// UnicodeVersionProvider supplies character widths for one Unicode version.
type UnicodeVersionProvider interface {
	Version() string
	Wcwidth(codepoint uint32) WideCharacterWidth
}

// JSUnicodeVersionProvider is a provider implemented in JS.
type JSUnicodeVersionProvider struct{ bridge.Ref }

// Version returns the provider's version. Providers may expose it as a
// property or as a method.
func (p JSUnicodeVersionProvider) Version() string {
	v := p.Get("version")
	if _, ok := goja.AssertFunction(v); ok {
		out, err := p.Call("version")
		if err != nil {
			Logger().Debug("provider version failed", zap.Error(err))
			return ""
		}
		v = out
	}
	return v.String()
}

// Wcwidth calls the provider's wcwidth. Failures count as narrow.
func (p JSUnicodeVersionProvider) Wcwidth(codepoint uint32) WideCharacterWidth {
	v, err := p.Call("wcwidth", codepoint)
	if err != nil {
		Logger().Debug("provider wcwidth failed", zap.Uint32("codepoint", codepoint), zap.Error(err))
		return WidthNarrow
	}
	return WideCharacterWidth(v.ToInteger())
}

// UnicodeVersionProviderCapability describes IUnicodeVersionProvider.
var UnicodeVersionProviderCapability = bridge.Define[UnicodeVersionProvider]("IUnicodeVersionProvider",
	func(r bridge.Ref) JSUnicodeVersionProvider { return JSUnicodeVersionProvider{r} })

// Unicode is a terminal's Unicode handling.
type Unicode struct{ bridge.Ref }

// UnicodeCapability labels IUnicodeHandling objects.
var UnicodeCapability = bridge.DefineForeign("IUnicodeHandling", func(r bridge.Ref) Unicode { return Unicode{r} })

// Versions returns the registered Unicode versions.
func (u Unicode) Versions() (readonly.Array[string], error) {
	return readonly.FromValue[string](u.Runtime(), u.Get("versions"))
}

// ActiveVersion returns the version used for width calculations.
func (u Unicode) ActiveVersion() string {
	return u.Get("activeVersion").String()
}

// SetActiveVersion selects a registered version.
func (u Unicode) SetActiveVersion(version string) error {
	return u.Runtime().SetProperty(u.Object(), "activeVersion", version)
}

// RegisterVersionProvider registers a Go or JS provider. The provider is
// borrowed: a JS provider is registered as is, and a Go provider must
// implement Clone() UnicodeVersionProvider so the clone can be bridged.
func (u Unicode) RegisterVersionProvider(p UnicodeVersionProvider) error {
	b, err := bridge.NewBinder(u.Runtime())
	if err != nil {
		return err
	}
	h, err := UnicodeVersionProviderCapability.ByRef(b, p)
	if err != nil {
		return err
	}
	_, err = u.Call("register", h.Object())
	return err
}
