package main

import (
	"github.com/spf13/cobra"
)

// These can be overridden at build time:
// go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "webserver",
		Short: "Single request per connection file server",
		Long: `webserver serves files from a document root over HTTP/1.1.
Each connection carries one GET request and is closed after the response.
HTML files are wrapped and have their date and server markers expanded;
images are sent byte for byte.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("webserver version {{.Version}}\n")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")

	root.AddCommand(newServeCmd(&cfgFile))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func versionString() string {
	if commit != "unknown" && len(commit) > 7 {
		return version + " (" + commit[:7] + ")"
	}
	return version
}
