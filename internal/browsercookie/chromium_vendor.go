package browsercookie

type chromiumVendor struct {
	browser Browser

	// user-visible
	label string

	// "Safe Storage" secret identifier.
	safeStorageService string
	safeStorageAccount string
}

func chromiumVendorForBrowser(b Browser) chromiumVendor {
	switch b {
	case BrowserChrome:
		return chromiumVendor{browser: b, label: "Chrome", safeStorageService: "Chrome Safe Storage", safeStorageAccount: "Chrome"}
	case BrowserEdge:
		return chromiumVendor{browser: b, label: "Microsoft Edge", safeStorageService: "Microsoft Edge Safe Storage", safeStorageAccount: "Microsoft Edge"}
	case BrowserBrave:
		return chromiumVendor{browser: b, label: "Brave", safeStorageService: "Brave Safe Storage", safeStorageAccount: "Brave"}
	case BrowserChromium:
		return chromiumVendor{browser: b, label: "Chromium", safeStorageService: "Chromium Safe Storage", safeStorageAccount: "Chromium"}
	default:
		return chromiumVendor{browser: b, label: string(b), safeStorageService: string(b) + " Safe Storage", safeStorageAccount: string(b)}
	}
}

// envKeySafeStoragePassword names the env override for a vendor's Safe
// Storage password, used by tests and CI to avoid keyring prompts.
func envKeySafeStoragePassword(b Browser) string {
	switch b {
	case BrowserChrome:
		return "MFP_CHROME_SAFE_STORAGE_PASSWORD"
	case BrowserEdge:
		return "MFP_EDGE_SAFE_STORAGE_PASSWORD"
	case BrowserBrave:
		return "MFP_BRAVE_SAFE_STORAGE_PASSWORD"
	case BrowserChromium:
		return "MFP_CHROMIUM_SAFE_STORAGE_PASSWORD"
	default:
		return "MFP_SAFE_STORAGE_PASSWORD"
	}
}
