package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-saver/internal/credentials"
	"github.com/maxaizer/job-saver/internal/services"
	"github.com/spf13/cobra"
	"io"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store the Notion integration token and database after verifying them",
	Long: "Store the Notion integration token and the database to save jobs to. The database can be given " +
		"as a Notion URL or an id. Nothing is stored unless Notion accepts the pair.",
	RunE: runSetup,
}

var (
	setupToken      string
	setupCollection string
	setupKeepToken  bool
	setupClear      bool
)

func init() {
	setupCmd.Flags().StringVar(&setupToken, "token", "", "Notion integration token (starts with "+credentials.TokenPrefix+")")
	setupCmd.Flags().StringVar(&setupCollection, "collection", "", "Notion database URL or id")
	setupCmd.Flags().BoolVar(&setupKeepToken, "keep-token", false, "Keep the stored token and only change the database")
	setupCmd.Flags().BoolVar(&setupClear, "clear", false, "Forget the stored token and database")
	setupCmd.MarkFlagsMutuallyExclusive("clear", "token")
	setupCmd.MarkFlagsMutuallyExclusive("clear", "collection")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if !setupClear && setupCollection == "" {
		return errors.New("required flag \"collection\" not set")
	}

	return withApp(func(a *app) error {
		if setupClear {
			return clearSettings(a, cmd.OutOrStdout())
		}

		saved, err := a.settings.Save(context.Background(), services.SaveSettingsRequest{
			Token:          setupToken,
			TokenUntouched: setupKeepToken,
			Collection:     setupCollection,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Settings saved. Database %s, token %s\n",
			saved.CollectionID, credentials.MaskToken(saved.Token))
		return nil
	})
}

func clearSettings(a *app, w io.Writer) error {
	if err := a.settings.Clear(context.Background()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "Settings cleared.")
	return err
}
