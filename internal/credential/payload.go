package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
)

// payloadCookie is the JSON form used in the MFP_COOKIES value and the
// exported mfp_cookies.json file.
type payloadCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain,omitempty"`
	Path     string  `json:"path,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Expires  *string `json:"expires,omitempty"`
}

// legacyPayloadEntry is the older map form, {name: {value, domain, ...}}.
type legacyPayloadEntry struct {
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
	Secure bool   `json:"secure"`
}

// ParsePayload decodes a serialized cookie payload. Three forms are
// accepted: the array form ([{name, value, ...}]), the legacy map form
// ({name: {value, ...}}), and a plain cookie-header string
// ("name=value; name2=value2"). Cookies without a domain default to the
// target domain.
func ParsePayload(raw string, domain string) ([]browsercookie.Cookie, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty cookie payload")
	}

	if !strings.HasPrefix(raw, "[") && !strings.HasPrefix(raw, "{") {
		return parsePairPayload(raw, domain)
	}

	var arr []payloadCookie
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return payloadToCookies(arr, domain)
	}

	var legacy map[string]legacyPayloadEntry
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, fmt.Errorf("cookie payload is not valid JSON: %w", err)
	}

	names := make([]string, 0, len(legacy))
	for name := range legacy {
		names = append(names, name)
	}
	sort.Strings(names)

	arr = arr[:0]
	for _, name := range names {
		e := legacy[name]
		arr = append(arr, payloadCookie{
			Name:   name,
			Value:  e.Value,
			Domain: e.Domain,
			Path:   e.Path,
			Secure: e.Secure,
		})
	}
	return payloadToCookies(arr, domain)
}

// MarshalPayload encodes cookies into the array payload form.
func MarshalPayload(cookies []browsercookie.Cookie) (string, error) {
	arr := make([]payloadCookie, 0, len(cookies))
	for _, c := range cookies {
		pc := payloadCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.Expires != nil {
			s := c.Expires.UTC().Format(time.RFC3339)
			pc.Expires = &s
		}
		arr = append(arr, pc)
	}
	b, err := json.Marshal(arr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// parsePairPayload handles the Cookie-header style form.
func parsePairPayload(raw string, domain string) ([]browsercookie.Cookie, error) {
	var arr []payloadCookie
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("cookie pair %q is not name=value", pair)
		}
		arr = append(arr, payloadCookie{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return payloadToCookies(arr, domain)
}

func payloadToCookies(in []payloadCookie, domain string) ([]browsercookie.Cookie, error) {
	out := make([]browsercookie.Cookie, 0, len(in))
	for _, pc := range in {
		if pc.Name == "" || pc.Value == "" {
			continue
		}
		c := browsercookie.Cookie{
			Name:     pc.Name,
			Value:    pc.Value,
			Domain:   pc.Domain,
			Path:     pc.Path,
			Secure:   pc.Secure,
			HTTPOnly: pc.HTTPOnly,
		}
		if c.Domain == "" {
			c.Domain = domain
		}
		if c.Path == "" {
			c.Path = "/"
		}
		if pc.Expires != nil && *pc.Expires != "" {
			t, err := time.Parse(time.RFC3339, *pc.Expires)
			if err != nil {
				return nil, fmt.Errorf("cookie %q has invalid expires %q: %w", pc.Name, *pc.Expires, err)
			}
			tt := t.UTC()
			c.Expires = &tt
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New("cookie payload contains no usable cookies")
	}
	return out, nil
}
