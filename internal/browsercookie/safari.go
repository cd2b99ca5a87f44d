package browsercookie

// safariReader reads Safari's Cookies.binarycookies store. Safari keeps a
// single unencrypted store per user, macOS only; other platforms report an
// unsupported warning.
type safariReader struct{}

func (r *safariReader) Browser() Browser { return BrowserSafari }
