package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/config"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/envfile"
)

var exportCmd = &cobra.Command{
	Use:   "export-cookies",
	Short: "Extract MyFitnessPal cookies from a local browser into a .env file",
	Long: `export-cookies reads the MyFitnessPal session cookies out of a logged-in
local browser and writes them to a .env file (or a JSON file with --json)
for deployments without browser access, such as servers and containers.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Bool("json", false, "write "+envfile.JSONFileName+" instead of a .env file")
	exportCmd.Flags().StringP("output", "o", "", "output path (defaults to ./.env or ./"+envfile.JSONFileName+")")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Debug)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Extracting MyFitnessPal cookies from browser...")

	// Always scan browsers here, even when MFP_COOKIES is already set:
	// the point of the export is to refresh the stored session.
	resolver := newResolver(cfg, logger)
	resolver.Payload = ""

	cred, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d cookies in %s\n", len(cred.Cookies), cred.Source)
	for _, name := range []string{"_mfp_session", "__Secure-next-auth.session-token", "known_user", "remember_me"} {
		for _, c := range cred.Cookies {
			if c.Name == name {
				fmt.Fprintf(out, "  - %s\n", name)
				break
			}
		}
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = envfile.EnvFileName
		if asJSON {
			path = envfile.JSONFileName
		}
	}

	if asJSON {
		err = envfile.WriteJSON(path, cred.Cookies)
	} else {
		err = envfile.WriteEnv(path, cred.Cookies)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved cookies to %s\n", path)
	fmt.Fprintln(out, "Keep this file secure; it grants access to your account.")
	fmt.Fprintln(out, "Sessions expire after roughly 30 days; re-run this command when they do.")
	return nil
}
