package main

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/maxaizer/job-saver/internal/scraper"
	"github.com/spf13/cobra"
	"os"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a job to the Notion database",
	Long: "Save a job to the Notion database. The job is described with flags, scraped from a saved " +
		"LinkedIn page (--html) or loaded from its LinkedIn URL when no details are given.",
	RunE: runSave,
}

var (
	saveTitles       []string
	saveCompany      string
	saveLocation     string
	saveURL          string
	saveContractType []string
	saveOfferKind    []string
	saveStatus       string
	saveHTMLFile     string
)

func init() {
	saveCmd.Flags().StringSliceVar(&saveTitles, "title", nil, "Job title, repeat for several")
	saveCmd.Flags().StringVar(&saveCompany, "company", "", "Company name")
	saveCmd.Flags().StringVar(&saveLocation, "location", "", "Job location")
	saveCmd.Flags().StringVar(&saveURL, "url", "", "Link to the job posting")
	saveCmd.Flags().StringSliceVar(&saveContractType, "type", nil, "Type of contract")
	saveCmd.Flags().StringSliceVar(&saveOfferKind, "offer", nil, "Offer or spontaneous application")
	saveCmd.Flags().StringVar(&saveStatus, "status", "", "Initial status")
	saveCmd.Flags().StringVar(&saveHTMLFile, "html", "", "Scrape the job from a saved page, --url names the page")

	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	job, err := jobFromFlags(ctx)
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		response := a.router.Dispatch(ctx, router.SaveJob(job))
		if err := responseError(response); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Job saved as %s\n", response.Data.(router.SavedJob).ID)
		return nil
	})
}

func jobFromFlags(ctx context.Context) (entities.ScrapedJob, error) {
	var job entities.ScrapedJob
	var err error

	switch {
	case saveHTMLFile != "":
		file, openErr := os.Open(saveHTMLFile)
		if openErr != nil {
			return entities.ScrapedJob{}, openErr
		}
		defer file.Close()
		job, err = scraper.Extract(file, saveURL)
	case saveURL != "" && len(saveTitles) == 0 && saveCompany == "":
		job, err = scraper.NewFetcher().Fetch(ctx, saveURL)
	default:
		job = entities.ScrapedJob{URL: saveURL}
	}
	if err != nil {
		return entities.ScrapedJob{}, err
	}

	if len(saveTitles) > 0 {
		job.Title = saveTitles
	}
	if saveCompany != "" {
		job.Company = saveCompany
	}
	if saveLocation != "" {
		job.Location = saveLocation
	}
	job.ContractType = saveContractType
	job.OfferKind = saveOfferKind
	job.Status = saveStatus
	return job, nil
}
