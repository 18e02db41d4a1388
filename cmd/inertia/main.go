package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inertia-go/inertia/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦┌┐┌┌─┐┬─┐┌┬┐┬┌─┐
  ║│││├┤ ├┬┘ │ │├─┤
  ╩┘└┘└─┘┴└─ ┴ ┴┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "inertia",
		Short: "Tooling for Inertia apps served from Go",
		Long: `Inertia glues a Go HTTP backend to a JavaScript single-page
frontend without building an API. The server keeps routing and
controllers; the client swaps pages from JSON payloads.

This CLI works against the inertia.json project file:

  • init     scaffold a default inertia.json
  • doctor   check manifest, template, and SSR renderer wiring
  • explain  describe an error code`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(
		initCmd(),
		doctorCmd(),
		explainCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
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
