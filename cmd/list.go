package main

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/maxaizer/job-saver/internal/services"
	"github.com/spf13/cobra"
	"io"
	"strings"
	"text/tabwriter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	RunE:  runList,
}

var (
	listStatus string
	listSearch string
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", services.StatusFilterAll, "Status to show, e.g. not-started or interviewing")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only show jobs whose title or company contains this text")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print records as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	return withApp(func(a *app) error {
		response := a.router.Dispatch(context.Background(), router.FetchJobs())
		if err := responseError(response); err != nil {
			return err
		}

		records := services.FilterJobs(response.Data.([]entities.JobRecord), listStatus, listSearch)
		if listJSON {
			return printJSON(cmd.OutOrStdout(), records)
		}
		return printRecords(cmd.OutOrStdout(), records)
	})
}

func printRecords(w io.Writer, records []entities.JobRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No jobs found.")
		return err
	}

	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tDATE\tSTATUS\tCOMPANY\tTITLE")
	for _, record := range records {
		date := ""
		if !record.CreatedDate.IsZero() {
			date = record.CreatedDate.Format(entities.DateLayout)
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			record.ID, date, record.Status, record.Company, strings.Join(record.Title, ", "))
	}
	return table.Flush()
}
