// Command filesubmit runs the file name form server and small helpers
// around it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "filesubmit",
		Short: "Two-page file name form server",
		Long: `filesubmit serves a form that collects a file name and redirects
to a confirmation page that echoes it back.

Configuration is read from FILESUBMIT_* environment variables and an
optional .env file.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRoutesCmd())
	rootCmd.AddCommand(newSubmitCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
