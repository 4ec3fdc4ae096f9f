package services

import (
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/samber/lo"
	"strings"
	"time"
)

const (
	PropertyCompany      = "Company name"
	PropertyTitle        = "Job title"
	PropertyDate         = "Date"
	PropertyContractType = "Type of contract"
	PropertyOfferKind    = "Offer or spontaneous"
	PropertyLink         = "Job Link"
	PropertyStatus       = "Status"
)

const (
	DefaultTitle   = "No Title"
	DefaultCompany = "No Company"
	NotSpecified   = "Not Specified"
	DefaultStatus  = "Not started"
	jobLinkLabel   = "Job Ref"
)

func jobProperties(job entities.ScrapedJob, now time.Time, statusType string) map[string]notion.PropertyValue {
	status := strings.TrimSpace(job.Status)
	if status == "" {
		status = DefaultStatus
	}

	company := strings.TrimSpace(job.Company)
	if company == "" {
		company = DefaultCompany
	}

	return map[string]notion.PropertyValue{
		PropertyCompany:      notion.TitleValue(company),
		PropertyTitle:        notion.MultiSelectValue(valuesOrDefault(job.Title, DefaultTitle)),
		PropertyDate:         notion.DateOf(now.Format(entities.DateLayout)),
		PropertyContractType: notion.MultiSelectValue(valuesOrDefault(job.ContractType, NotSpecified)),
		PropertyOfferKind:    notion.MultiSelectValue(valuesOrDefault(job.OfferKind, NotSpecified)),
		PropertyLink:         notion.LinkValue(jobLinkLabel, strings.TrimSpace(job.URL)),
		PropertyStatus:       notion.OptionValue(statusType, status),
	}
}

func valuesOrDefault(value entities.MultiValue, fallback string) []string {
	values := value.Values()
	if len(values) == 0 {
		return []string{fallback}
	}
	// multi_select option names can't contain commas
	return lo.Map(values, func(v string, _ int) string {
		return strings.ReplaceAll(v, ",", " ")
	})
}

func recordFromPage(page notion.Page) entities.JobRecord {
	properties := page.Properties

	record := entities.JobRecord{
		ID:           page.ID,
		Title:        properties[PropertyTitle].OptionNames(),
		Company:      notion.PlainText(properties[PropertyCompany].Title),
		ContractType: properties[PropertyContractType].OptionNames(),
		OfferKind:    properties[PropertyOfferKind].OptionNames(),
		URL:          properties[PropertyLink].LinkURL(),
		Status:       properties[PropertyStatus].OptionName(),
	}

	if date := properties[PropertyDate].Date; date != nil && date.Start != "" {
		if parsed, err := entities.ParseDate(date.Start); err == nil {
			record.CreatedDate = parsed
		}
	}
	if record.CreatedDate.IsZero() && !page.CreatedTime.IsZero() {
		created := page.CreatedTime.UTC()
		record.CreatedDate = entities.Date{Time: time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)}
	}

	return record
}
