package browsercookie

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// chromiumReader reads one Chromium-family browser's cookie stores.
type chromiumReader struct {
	vendor chromiumVendor
}

func (r *chromiumReader) Browser() Browser { return r.vendor.browser }

func (r *chromiumReader) Read(ctx context.Context, domain string, opts Options) ([]Cookie, []string, error) {
	stores, warnings := chromiumResolveStores(r.vendor.browser, opts.Profile)
	if len(stores) == 0 {
		return nil, append(warnings, fmt.Sprintf("%s cookie store not found", r.vendor.label)), nil
	}

	decrypt, decryptWarnings := chromiumDecryptor(r.vendor, stores, opts.timeout())
	warnings = append(warnings, decryptWarnings...)

	var out []Cookie
	for _, st := range stores {
		snapshotPath, cleanup, snapWarnings, err := sqliteSnapshotReadOnly(ctx, st.cookiesDB)
		warnings = append(warnings, snapWarnings...)
		if err != nil {
			continue
		}
		func() {
			defer cleanup()

			db, err := openSQLiteReadOnly(ctx, snapshotPath)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to open %s cookies DB: %v", r.vendor.label, err))
				return
			}
			defer func() { _ = db.Close() }()

			metaVersion := chromiumMetaVersion(ctx, db)

			rows, err := chromiumReadCookieRows(ctx, db, domain)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to read %s cookies: %v", r.vendor.label, err))
				return
			}

			for _, row := range rows {
				c, ok := chromiumRowToCookie(r.vendor, st, row, metaVersion, decrypt)
				if !ok {
					continue
				}
				out = append(out, c)
			}
		}()
	}

	return dedupeCookies(filterDomain(domain, opts.IncludeExpired, out)), warnings, nil
}

type chromiumStore struct {
	cookiesDB string
	userData  string
	profile   string
	isDefault bool
}

type chromiumDecryptFunc func(encrypted []byte, metaVersion int64) ([]byte, bool)

func chromiumRowToCookie(vendor chromiumVendor, st chromiumStore, row chromiumCookieRow, metaVersion int64, decrypt chromiumDecryptFunc) (Cookie, bool) {
	if row.name == "" || row.hostKey == "" {
		return Cookie{}, false
	}

	value := row.value
	if value == "" && len(row.encryptedValue) > 0 && decrypt != nil {
		if decrypted, ok := decrypt(row.encryptedValue, metaVersion); ok {
			if decoded, ok := chromiumDecodeCookieValue(decrypted); ok {
				value = decoded
			}
		}
	}
	if value == "" {
		return Cookie{}, false
	}

	var expires *time.Time
	if row.expiresUTC != 0 {
		if t, ok := chromiumExpiresUTCToTime(row.expiresUTC); ok {
			expires = &t
		}
	}

	if row.path == "" {
		row.path = "/"
	}

	return Cookie{
		Name:      row.name,
		Value:     value,
		Domain:    strings.TrimPrefix(row.hostKey, "."),
		Path:      row.path,
		Secure:    row.isSecure,
		HTTPOnly:  row.isHTTPOnly,
		Expires:   expires,
		Browser:   vendor.browser,
		Profile:   st.profile,
		StorePath: st.cookiesDB,
	}, true
}

func chromiumExpiresUTCToTime(expiresUTC int64) (time.Time, bool) {
	// Chromium stores times as microseconds since 1601-01-01 UTC.
	const unixEpochDiffMicros = int64(11644473600000000)
	unixMicros := expiresUTC - unixEpochDiffMicros
	if unixMicros <= 0 {
		return time.Time{}, false
	}
	return time.Unix(0, unixMicros*1000).UTC(), true
}

func chromiumResolveStores(b Browser, profileOverride string) ([]chromiumStore, []string) {
	if profileOverride != "" {
		st, warnings := chromiumResolveStoreFromOverride(b, profileOverride)
		if len(st) > 0 {
			return st, warnings
		}
		return nil, warnings
	}

	roots := chromiumUserDataDirs(b)
	var out []chromiumStore
	var warnings []string
	for _, root := range roots {
		st, w := chromiumResolveStoresFromUserDataDir(b, root)
		warnings = append(warnings, w...)
		out = append(out, st...)
	}
	return out, warnings
}

func chromiumResolveStoresFromUserDataDir(b Browser, userDataDir string) ([]chromiumStore, []string) {
	localStatePath := filepath.Join(userDataDir, "Local State")
	localStateBytes, err := os.ReadFile(localStatePath)
	if err != nil {
		return nil, nil
	}

	var localState struct {
		Profile struct {
			InfoCache map[string]struct {
				IsUsingDefaultName bool `json:"is_using_default_name"`
				Name               string
			} `json:"info_cache"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(localStateBytes, &localState); err != nil {
		// Fallback: still probe Default.
		return chromiumStoresForProfileDir(userDataDir, "Default", "Default", true),
			[]string{fmt.Sprintf("failed to parse Local State (%s): %v", userDataDir, err)}
	}

	var out []chromiumStore
	for profDir, prof := range localState.Profile.InfoCache {
		out = append(out, chromiumStoresForProfileDir(userDataDir, profDir, prof.Name, prof.IsUsingDefaultName)...)
	}
	return out, nil
}

func chromiumStoresForProfileDir(userDataDir string, profDir string, profName string, isDefault bool) []chromiumStore {
	var out []chromiumStore
	candidates := []string{
		filepath.Join(userDataDir, profDir, "Network", "Cookies"),
		filepath.Join(userDataDir, profDir, "Cookies"),
	}
	for _, p := range candidates {
		if fileExists(p) {
			out = append(out, chromiumStore{
				cookiesDB: p,
				userData:  userDataDir,
				profile:   profName,
				isDefault: isDefault,
			})
		}
	}
	return out
}

func chromiumResolveStoreFromOverride(b Browser, override string) ([]chromiumStore, []string) {
	override = strings.TrimSpace(override)
	if override == "" {
		return nil, nil
	}

	// 1) Explicit file/directory.
	if fi, err := os.Stat(override); err == nil {
		if fi.IsDir() {
			return chromiumResolveFromProfileDir(override), nil
		}
		return chromiumResolveFromCookiesDBPath(b, override)
	}

	// 2) Treat as profile name across known roots.
	var out []chromiumStore
	for _, root := range chromiumUserDataDirs(b) {
		out = append(out, chromiumStoresForProfileDir(root, override, override, false)...)
	}
	if len(out) == 0 {
		return nil, []string{fmt.Sprintf("%s profile %q not found", b, override)}
	}
	return out, nil
}

func chromiumResolveFromProfileDir(profileDir string) []chromiumStore {
	candidates := []string{
		filepath.Join(profileDir, "Network", "Cookies"),
		filepath.Join(profileDir, "Cookies"),
	}
	for _, p := range candidates {
		if fileExists(p) {
			return []chromiumStore{{
				cookiesDB: p,
				userData:  filepath.Dir(profileDir),
				profile:   filepath.Base(profileDir),
			}}
		}
	}
	return nil
}

func chromiumResolveFromCookiesDBPath(b Browser, cookiesDBPath string) ([]chromiumStore, []string) {
	if !fileExists(cookiesDBPath) {
		return nil, []string{fmt.Sprintf("%s cookies DB not found at %q", b, cookiesDBPath)}
	}

	dir := filepath.Dir(cookiesDBPath)
	if filepath.Base(dir) == "Network" {
		dir = filepath.Dir(dir)
	}
	return []chromiumStore{{
		cookiesDB: cookiesDBPath,
		userData:  filepath.Dir(dir),
		profile:   filepath.Base(dir),
	}}, nil
}
