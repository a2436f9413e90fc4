package main

import (
	"fmt"
	"time"

	"github.com/deppfellow/filesubmit/internal/lib/formclient"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit <file_name>",
		Short: "Post a file name to a running server",
		Long:  "Posts the form to a running server and prints the confirmation page URL it redirects to.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := formclient.New(baseURL, timeout).Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	return cmd
}
