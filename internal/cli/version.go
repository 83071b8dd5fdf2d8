package cli

import (
	"fmt"
	"strings"
)

// versionTemplate renders --version output. The build details come from
// ldflags, so they are baked into the template rather than read from cobra.
func versionTemplate(info BuildInfo) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s version %s\n", appName, info.Version)
	if info.Commit != "" {
		fmt.Fprintf(&builder, "  commit: %s\n", info.Commit)
	}
	if info.Date != "" {
		fmt.Fprintf(&builder, "  built:  %s\n", info.Date)
	}
	// Cobra runs this through text/template.
	return strings.ReplaceAll(builder.String(), "{{", "{{`{{`}}")
}
