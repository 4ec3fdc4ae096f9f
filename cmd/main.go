package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"os"
)

var rootCmd = &cobra.Command{
	Use:   "job-saver",
	Short: "Save job postings to a Notion database and track their status",
	Long: "job-saver stores job postings as pages of a Notion database. It serves a local HTTP bridge " +
		"for the browser extension and offers the same operations on the command line.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
