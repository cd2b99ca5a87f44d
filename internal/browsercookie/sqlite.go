package browsercookie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go).
)

// sqliteSnapshotReadOnly copies a cookie database (plus WAL sidecars) into a
// temp dir so a running browser's file lock never blocks the read.
func sqliteSnapshotReadOnly(ctx context.Context, dbPath string) (snapshotPath string, cleanup func(), warnings []string, err error) {
	_ = ctx
	dir, err := os.MkdirTemp("", "mfp-cookies-")
	if err != nil {
		return "", nil, nil, err
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	target := filepath.Join(dir, "Cookies")
	if err := copyFile(dbPath, target); err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to copy cookies DB: %v", err))
		cleanup()
		return "", nil, warnings, err
	}

	// If WAL mode is enabled, recent writes may live in sidecars.
	_ = copyFileIfExists(dbPath+"-wal", target+"-wal")
	_ = copyFileIfExists(dbPath+"-shm", target+"-shm")

	return target, cleanup, warnings, nil
}

func openSQLiteReadOnly(ctx context.Context, snapshotPath string) (*sql.DB, error) {
	dsn := "file:" + filepath.ToSlash(snapshotPath) + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type chromiumCookieRow struct {
	hostKey        string
	name           string
	path           string
	value          string
	encryptedValue []byte
	expiresUTC     int64
	isSecure       bool
	isHTTPOnly     bool
}

func chromiumMetaVersion(ctx context.Context, db *sql.DB) int64 {
	if db == nil {
		return 0
	}
	var value string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&value); err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func chromiumReadCookieRows(ctx context.Context, db *sql.DB, domain string) ([]chromiumCookieRow, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}

	where, args := hostWhereClause("host_key", domain)
	query := `SELECT host_key, name, path, value, encrypted_value, expires_utc, is_secure, is_httponly FROM cookies WHERE (` + where + `) ORDER BY expires_utc DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []chromiumCookieRow
	for rows.Next() {
		var r chromiumCookieRow
		var encrypted []byte
		var expires sql.NullInt64
		var secure sql.NullInt64
		var httpOnly sql.NullInt64

		if err := rows.Scan(&r.hostKey, &r.name, &r.path, &r.value, &encrypted, &expires, &secure, &httpOnly); err != nil {
			return nil, err
		}

		r.encryptedValue = encrypted
		if expires.Valid {
			r.expiresUTC = expires.Int64
		}
		r.isSecure = secure.Valid && secure.Int64 == 1
		r.isHTTPOnly = httpOnly.Valid && httpOnly.Int64 == 1

		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// hostWhereClause builds a placeholder-only WHERE clause matching the target
// domain, its dotted form, and any subdomain, for each candidate suffix.
func hostWhereClause(column string, domain string) (string, []any) {
	domain = normalizeDomain(domain)
	if domain == "" {
		return "1=1", nil
	}

	var clauses []string
	var args []any
	for _, candidate := range expandDomainCandidates(domain) {
		clauses = append(clauses, column+" = ?", column+" = ?", column+" LIKE ?")
		args = append(args, candidate, "."+candidate, "%."+candidate)
	}
	if len(clauses) == 0 {
		return "1=0", nil
	}
	return strings.Join(clauses, " OR "), args
}
