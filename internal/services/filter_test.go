package services

import (
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"testing"
)

var trackedJobs = []entities.JobRecord{
	{ID: "1", Title: []string{"Go developer"}, Company: "Acme", Status: "Not started"},
	{ID: "2", Title: []string{"Backend engineer", "Platform"}, Company: "Globex", Status: "Interviewing"},
	{ID: "3", Title: []string{"Data analyst"}, Company: "Go Analytics", Status: "Not started"},
}

func ids(records []entities.JobRecord) []string {
	return lo.Map(records, func(r entities.JobRecord, _ int) string { return r.ID })
}

func Test_StatusSlug_ShouldReplaceOnlyFirstSpace(t *testing.T) {
	assert.Equal(t, "not-started", StatusSlug("Not started"))
	assert.Equal(t, "offer-on hold", StatusSlug("Offer on hold"))
	assert.Equal(t, "applied", StatusSlug("Applied"))
}

func Test_FilterJobs_WithoutFilters_ShouldKeepAll(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterJobs(trackedJobs, "", "")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterJobs(trackedJobs, StatusFilterAll, "")))
}

func Test_FilterJobs_ByStatusSlug(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(FilterJobs(trackedJobs, "not-started", "")))
	assert.Equal(t, []string{"2"}, ids(FilterJobs(trackedJobs, "Interviewing", "")))
	assert.Empty(t, FilterJobs(trackedJobs, "rejected", ""))
}

func Test_FilterJobs_BySearchTerm_ShouldMatchTitleOrCompany(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(FilterJobs(trackedJobs, "", "go")))
	assert.Equal(t, []string{"2"}, ids(FilterJobs(trackedJobs, "", "PLATFORM")))
	assert.Equal(t, []string{"3"}, ids(FilterJobs(trackedJobs, "not-started", "analytics")))
}
