// Package envfile writes an extracted MyFitnessPal session to
// deployment-friendly files: a .env holding a single MFP_COOKIES entry, or a
// standalone mfp_cookies.json. Both grant account access and are written
// owner-readable only.
package envfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/credential"
)

// Default output file names.
const (
	EnvFileName  = ".env"
	JSONFileName = "mfp_cookies.json"
)

const cookiesVar = "MFP_COOKIES"

const envHeader = `# MyFitnessPal cookies (extracted from browser)
# Grants access to your account; keep secure and never commit to git.
# Sessions expire after roughly 30 days; re-run the export when they do.

`

// WriteEnv writes cookies to a dotenv file as one MFP_COOKIES entry.
func WriteEnv(path string, cookies []browsercookie.Cookie) error {
	payload, err := credential.MarshalPayload(cookies)
	if err != nil {
		return fmt.Errorf("encoding cookie payload: %w", err)
	}
	body, err := godotenv.Marshal(map[string]string{cookiesVar: payload})
	if err != nil {
		return fmt.Errorf("encoding dotenv file: %w", err)
	}
	return writeFile(path, []byte(envHeader+body+"\n"))
}

// WriteJSON writes cookies to a standalone JSON file, indented for human
// inspection. The format matches what MFP_COOKIES accepts.
func WriteJSON(path string, cookies []browsercookie.Cookie) error {
	payload, err := credential.MarshalPayload(cookies)
	if err != nil {
		return fmt.Errorf("encoding cookie payload: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(payload), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
