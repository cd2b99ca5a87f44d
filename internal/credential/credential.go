// Package credential resolves a MyFitnessPal session credential, either from
// an explicit serialized cookie payload (the MFP_COOKIES environment value)
// or by scanning local browser cookie stores in a fixed priority order.
package credential

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
)

// DefaultDomain is the cookie domain the resolver targets.
const DefaultDomain = "myfitnesspal.com"

// SourceEnvironment marks a credential parsed from the explicit cookie payload.
const SourceEnvironment = "environment"

// Credential is a resolved session: the cookie set granting access to the
// user's account, and where it came from ("environment" or a browser name).
// It is held in memory for the process lifetime and never persisted here.
type Credential struct {
	Cookies []browsercookie.Cookie
	Source  string
}

// Jar builds an http.CookieJar pre-loaded with the credential's cookies,
// scoped to siteURL. Cookies without a domain inherit the site host.
func (c *Credential) Jar(siteURL string) (http.CookieJar, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpCookies := make([]*http.Cookie, 0, len(c.Cookies))
	for _, ck := range c.Cookies {
		hc := &http.Cookie{
			Name:   ck.Name,
			Value:  ck.Value,
			Path:   ck.Path,
			Domain: ck.Domain,
			Secure: ck.Secure,
		}
		if ck.Expires != nil {
			hc.Expires = *ck.Expires
		}
		httpCookies = append(httpCookies, hc)
	}
	jar.SetCookies(u, httpCookies)
	return jar, nil
}

// Names lists the cookie names in the credential, in order.
func (c *Credential) Names() []string {
	out := make([]string, 0, len(c.Cookies))
	for _, ck := range c.Cookies {
		out = append(out, ck.Name)
	}
	return out
}
