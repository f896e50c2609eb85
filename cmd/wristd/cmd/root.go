package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:           "wristd",
	Short:         "Wrist-side focus timer agent",
	Long:          "wristd runs the focus countdown on the wrist device and pushes daily summaries to the companion service.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "companion service base URL")
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(runCmd)
}
