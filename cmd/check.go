package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that credentials are stored and still accepted by Notion",
	RunE:  runCheck,
}

var checkOffline bool

func init() {
	checkCmd.Flags().BoolVar(&checkOffline, "offline", false, "Only check that credentials are stored")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		ctx := context.Background()

		response := a.router.Dispatch(ctx, router.CheckAuth())
		if err := responseError(response); err != nil {
			return err
		}
		if !*response.Authenticated {
			return errors.New("credentials are not configured (run `job-saver setup`)")
		}
		if checkOffline {
			fmt.Fprintln(cmd.OutOrStdout(), "Credentials are stored.")
			return nil
		}

		stored, err := a.store.LoadCredentials(ctx)
		if err != nil {
			return err
		}
		if err = a.settings.Verify(ctx, *stored); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Credentials are valid, database %s is accessible.\n", stored.CollectionID)
		return nil
	})
}
