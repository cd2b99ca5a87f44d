// Package browsercookie reads cookies for a single domain from local browser
// profiles (Chrome-family, Firefox, Safari).
//
// It is meant for local tooling: it touches browser state on disk and may
// trigger keychain/keyring prompts. Per-store problems (browser not
// installed, locked database, missing keychain entry) are reported as
// warning strings rather than errors so that callers can fall through to
// the next browser.
package browsercookie

import (
	"context"
	"time"
)

// Browser identifies a supported cookie source.
type Browser string

const (
	// BrowserChrome is Google Chrome.
	BrowserChrome Browser = "chrome"
	// BrowserEdge is Microsoft Edge.
	BrowserEdge Browser = "edge"
	// BrowserBrave is Brave Browser.
	BrowserBrave Browser = "brave"
	// BrowserChromium is Chromium.
	BrowserChromium Browser = "chromium"
	// BrowserFirefox is Mozilla Firefox.
	BrowserFirefox Browser = "firefox"
	// BrowserSafari is Apple Safari (macOS only).
	BrowserSafari Browser = "safari"
)

// Cookie is a browser cookie record.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool

	Expires *time.Time

	// Browser and StorePath record where the cookie was read from.
	Browser   Browser
	Profile   string
	StorePath string
}

// Options configures a store read.
type Options struct {
	// Profile overrides store selection. For Chromium-family browsers:
	// a profile name (e.g. "Default"), a profile directory, or an explicit
	// Cookies DB path. For Firefox: a profile name/dir or cookies.sqlite
	// path. For Safari: an explicit Cookies.binarycookies path.
	Profile string

	// Timeout bounds OS helper calls (keychain/keyring). Zero means
	// DefaultTimeout.
	Timeout time.Duration

	IncludeExpired bool
}

// DefaultTimeout is used for OS helper calls when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// Reader reads cookies for a domain out of one browser's local store.
//
// Implementations never return an error for an absent or unreadable store;
// those conditions come back as warnings with an empty cookie slice.
type Reader interface {
	Browser() Browser
	Read(ctx context.Context, domain string, opts Options) ([]Cookie, []string, error)
}

// DefaultReaders returns the supported readers in fixed priority order.
func DefaultReaders() []Reader {
	return []Reader{
		&chromiumReader{vendor: chromiumVendorForBrowser(BrowserChrome)},
		&chromiumReader{vendor: chromiumVendorForBrowser(BrowserEdge)},
		&chromiumReader{vendor: chromiumVendorForBrowser(BrowserBrave)},
		&chromiumReader{vendor: chromiumVendorForBrowser(BrowserChromium)},
		&firefoxReader{},
		&safariReader{},
	}
}

// ReaderFor returns the reader for a single browser, or nil if b is not a
// supported browser.
func ReaderFor(b Browser) Reader {
	switch b {
	case BrowserChrome, BrowserEdge, BrowserBrave, BrowserChromium:
		return &chromiumReader{vendor: chromiumVendorForBrowser(b)}
	case BrowserFirefox:
		return &firefoxReader{}
	case BrowserSafari:
		return &safariReader{}
	default:
		return nil
	}
}
