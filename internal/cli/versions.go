package cli

import (
	clierrors "github.com/ariel-frischer/docsync/internal/errors"
	"github.com/spf13/cobra"
)

// requireVersions rejects invocations without both <v_js> and <v_bin>.
// Extra arguments are ignored.
func requireVersions(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return clierrors.MissingVersions(cmd.UseLine())
	}
	return nil
}

// pathOr returns flagValue when set, otherwise the configured path.
func pathOr(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	return configured
}
