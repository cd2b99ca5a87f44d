package browsercookie

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
)

// firefoxReader reads Firefox cookies.sqlite stores located via profiles.ini.
type firefoxReader struct{}

func (r *firefoxReader) Browser() Browser { return BrowserFirefox }

func (r *firefoxReader) Read(ctx context.Context, domain string, opts Options) ([]Cookie, []string, error) {
	dbs, warnings := firefoxResolveCookieDBs(opts.Profile)
	if len(dbs) == 0 {
		return nil, append(warnings, "Firefox cookie store not found"), nil
	}

	var out []Cookie
	for _, dbPath := range dbs {
		snap, cleanup, _, err := sqliteSnapshotReadOnly(ctx, dbPath.path)
		if err != nil {
			continue
		}
		func() {
			defer cleanup()

			db, err := openSQLiteReadOnly(ctx, snap)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to open Firefox cookies DB: %v", err))
				return
			}
			defer func() { _ = db.Close() }()

			rows, err := firefoxReadRows(ctx, db, domain)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to read Firefox cookies: %v", err))
				return
			}
			for _, row := range rows {
				c, ok := firefoxRowToCookie(dbPath, row)
				if !ok {
					continue
				}
				out = append(out, c)
			}
		}()
	}

	return dedupeCookies(filterDomain(domain, opts.IncludeExpired, out)), warnings, nil
}

type firefoxDB struct {
	path    string
	profile string
}

func firefoxResolveCookieDBs(override string) ([]firefoxDB, []string) {
	override = strings.TrimSpace(override)
	if override != "" {
		if fi, err := os.Stat(override); err == nil {
			if fi.IsDir() {
				dbPath := filepath.Join(override, "cookies.sqlite")
				if fileExists(dbPath) {
					return []firefoxDB{{path: dbPath, profile: filepath.Base(override)}}, nil
				}
				return nil, []string{fmt.Sprintf("Firefox cookies.sqlite not found in %q", override)}
			}
			return []firefoxDB{{path: override, profile: filepath.Base(filepath.Dir(override))}}, nil
		}
	}

	var out []firefoxDB
	for _, root := range firefoxRoots() {
		iniPath := filepath.Join(root, "profiles.ini")
		cfg, err := ini.Load(iniPath)
		if err != nil {
			continue
		}

		for _, secName := range cfg.SectionStrings() {
			if !strings.HasPrefix(secName, "Profile") {
				continue
			}
			sec := cfg.Section(secName)
			name := sec.Key("Name").String()
			pathStr := filepath.FromSlash(sec.Key("Path").String())
			if pathStr == "" {
				continue
			}
			if sec.Key("IsRelative").String() == "1" {
				pathStr = filepath.Join(root, pathStr)
			}
			dbPath := filepath.Join(pathStr, "cookies.sqlite")
			if !fileExists(dbPath) {
				continue
			}

			prof := name
			if prof == "" {
				prof = filepath.Base(pathStr)
			}
			if override != "" && prof != override && filepath.Base(pathStr) != override {
				continue
			}
			out = append(out, firefoxDB{path: dbPath, profile: prof})
		}
	}

	if override != "" && len(out) == 0 {
		return nil, []string{fmt.Sprintf("Firefox profile %q not found", override)}
	}
	return out, nil
}

type firefoxRow struct {
	host     string
	name     string
	value    string
	path     string
	expiry   int64
	isSecure bool
	httpOnly bool
}

func firefoxReadRows(ctx context.Context, db *sql.DB, domain string) ([]firefoxRow, error) {
	where, args := hostWhereClause("host", domain)
	//nolint:gosec // `where` is generated with placeholders; the domain is passed via args.
	query := `SELECT host, name, value, path, expiry, isSecure, isHttpOnly FROM moz_cookies WHERE (` + where + `) ORDER BY expiry DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []firefoxRow
	for rows.Next() {
		var r firefoxRow
		var expiry sql.NullInt64
		var secure sql.NullInt64
		var httpOnly sql.NullInt64

		if err := rows.Scan(&r.host, &r.name, &r.value, &r.path, &expiry, &secure, &httpOnly); err != nil {
			return nil, err
		}
		if expiry.Valid {
			r.expiry = expiry.Int64
		}
		r.isSecure = secure.Valid && secure.Int64 == 1
		r.httpOnly = httpOnly.Valid && httpOnly.Int64 == 1

		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func firefoxRowToCookie(db firefoxDB, r firefoxRow) (Cookie, bool) {
	if r.name == "" || r.host == "" || r.value == "" {
		return Cookie{}, false
	}
	if r.path == "" {
		r.path = "/"
	}

	var expires *time.Time
	if r.expiry > 0 {
		t := time.Unix(r.expiry, 0).UTC()
		expires = &t
	}

	return Cookie{
		Name:      r.name,
		Value:     r.value,
		Domain:    strings.TrimPrefix(r.host, "."),
		Path:      r.path,
		Secure:    r.isSecure,
		HTTPOnly:  r.httpOnly,
		Expires:   expires,
		Browser:   BrowserFirefox,
		Profile:   db.profile,
		StorePath: db.path,
	}, true
}
