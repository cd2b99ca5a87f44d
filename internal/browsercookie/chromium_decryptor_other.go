//go:build !darwin && !linux && !windows

package browsercookie

import "time"

func chromiumDecryptor(_ chromiumVendor, _ []chromiumStore, _ time.Duration) (chromiumDecryptFunc, []string) {
	return nil, []string{"chromium cookie decryption unsupported on this OS"}
}
