package main

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <job id> <status>",
	Short: "Change the status of a saved job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			response := a.router.Dispatch(context.Background(), router.UpdateStatus(args[0], args[1]))
			if err := responseError(response); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status of %s set to %q\n", args[0], args[1])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
