package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬─┐┬  ┬┌─┐┬  ┌─┐┌─┐┌┬┐
  └─┐├┤ ├┬┘└┐┌┘│ ││  │ │├─┤ ││
  └─┘└─┘┴└─ └┘ └─┘┴─┘└─┘┴ ┴─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "servoload",
		Short: "Stylesheet load coordinator for link elements",
		Long: `Servoload drives the link resource load coordinator from the
command line.

It models a document with a single link element, resolves the
element's href against the document base URL, fetches the stylesheet
and its imports, and reports the aggregate outcome:

  • Generation-tagged requests; superseded completions are discarded
  • @import fan-out counted as sub-loads of the same batch
  • Subresource integrity checking (sha256)
  • Favicon notices over a WebSocket embedder bridge`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(
		loadCmd(),
		serveCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the servoload ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
