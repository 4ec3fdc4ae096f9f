package main

import (
	"context"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the stored settings with the token masked",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(func(a *app) error {
			view, err := a.settings.View(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
