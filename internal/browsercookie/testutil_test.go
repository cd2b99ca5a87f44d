package browsercookie

import (
	"crypto/aes"
	"crypto/cipher"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createChromiumCookieDB(t *testing.T, path string, metaVersion string) *sql.DB {
	t.Helper()
	db := openTestSQLite(t, path)
	if _, err := db.Exec(`CREATE TABLE meta(key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO meta(key,value) VALUES('version',?)`, metaVersion); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE cookies(host_key TEXT, name TEXT, path TEXT, value TEXT, encrypted_value BLOB, expires_utc INTEGER, is_secure INTEGER, is_httponly INTEGER)`); err != nil {
		t.Fatal(err)
	}
	return db
}

func insertChromiumCookie(t *testing.T, db *sql.DB, hostKey, name, value string, encrypted []byte, expires time.Time) {
	t.Helper()
	if _, err := db.Exec(
		`INSERT INTO cookies(host_key,name,path,value,encrypted_value,expires_utc,is_secure,is_httponly) VALUES(?,?,?,?,?,?,?,?)`,
		hostKey, name, "/", value, encrypted, timeToChromiumExpiresUTC(expires), 1, 1,
	); err != nil {
		t.Fatal(err)
	}
}

func timeToChromiumExpiresUTC(t time.Time) int64 {
	const unixEpochDiffMicros = int64(11644473600000000)
	return unixEpochDiffMicros + (t.UnixNano() / 1000)
}

func pkcs7Pad(t *testing.T, b []byte) []byte {
	t.Helper()
	paddingLen := aes.BlockSize - (len(b) % aes.BlockSize)
	if paddingLen == 0 {
		paddingLen = aes.BlockSize
	}
	out := make([]byte, 0, len(b)+paddingLen)
	out = append(out, b...)
	for i := 0; i < paddingLen; i++ {
		out = append(out, byte(paddingLen))
	}
	return out
}

func encryptAESCBCForTest(t *testing.T, prefix string, key []byte, plaintext []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	iv := []byte(chromiumAESCBCIV)
	padded := pkcs7Pad(t, plaintext)
	ciphertext := make([]byte, len(padded))
	cbc := cipher.NewCBCEncrypter(block, iv)
	cbc.CryptBlocks(ciphertext, padded)
	return append([]byte(prefix), ciphertext...)
}
