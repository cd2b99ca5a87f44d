package browsercookie

import (
	"strings"
	"time"
)

// filterDomain keeps cookies that apply to the target domain or any of its
// subdomains, dropping expired ones unless includeExpired is set.
func filterDomain(domain string, includeExpired bool, cookies []Cookie) []Cookie {
	domain = normalizeDomain(domain)
	if len(cookies) == 0 {
		return nil
	}

	now := time.Now()
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" || c.Value == "" {
			continue
		}
		if !includeExpired && c.Expires != nil && c.Expires.Before(now) {
			continue
		}
		if domain != "" && !domainMatches(domain, c.Domain) {
			continue
		}
		if c.Path == "" {
			c.Path = "/"
		}
		c.Domain = normalizeDomain(c.Domain)
		out = append(out, c)
	}
	return out
}

// domainMatches reports whether a cookie with cookieDomain applies to the
// target domain. A cookie set on myfitnesspal.com matches both the bare
// domain and every subdomain; a cookie set on www.myfitnesspal.com matches
// when the target is a parent of it, since store queries run against every
// candidate suffix of the target.
func domainMatches(target, cookieDomain string) bool {
	target = normalizeDomain(target)
	cookieDomain = normalizeDomain(cookieDomain)
	if target == "" || cookieDomain == "" {
		return false
	}
	if target == cookieDomain {
		return true
	}
	if strings.HasSuffix(cookieDomain, "."+target) {
		return true
	}
	return strings.HasSuffix(target, "."+cookieDomain)
}

func normalizeDomain(d string) string {
	d = strings.TrimSpace(d)
	d = strings.TrimPrefix(d, ".")
	return strings.ToLower(d)
}

// expandDomainCandidates lists the domain and each parent suffix that a
// cookie store row could be keyed under (host_key "example.com",
// ".example.com", subdomains). The registrable root is the shortest
// candidate returned.
func expandDomainCandidates(domain string) []string {
	domain = normalizeDomain(domain)
	parts := strings.Split(domain, ".")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) <= 1 {
		return []string{domain}
	}

	seen := make(map[string]struct{}, len(cleaned))
	var out []string
	add := func(d string) {
		if d == "" {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}

	add(domain)
	for i := 1; i <= len(cleaned)-2; i++ {
		add(strings.Join(cleaned[i:], "."))
	}
	return out
}

// dedupeCookies drops later duplicates of the same (name, domain, path).
func dedupeCookies(cookies []Cookie) []Cookie {
	if len(cookies) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(cookies))
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		key := c.Name + "\x00" + c.Domain + "\x00" + c.Path
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
