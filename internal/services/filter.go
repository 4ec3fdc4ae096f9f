package services

import (
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/samber/lo"
	"strings"
)

const StatusFilterAll = "all"

// StatusSlug turns "Not started" into "not-started". Only the first space is replaced.
func StatusSlug(status string) string {
	return strings.Replace(strings.ToLower(status), " ", "-", 1)
}

// FilterJobs keeps records matching the status filter and containing searchTerm in title or company.
func FilterJobs(all []entities.JobRecord, statusFilter, searchTerm string) []entities.JobRecord {
	statusFilter = strings.ToLower(strings.TrimSpace(statusFilter))
	searchTerm = strings.ToLower(strings.TrimSpace(searchTerm))

	return lo.Filter(all, func(job entities.JobRecord, _ int) bool {
		matchesStatus := statusFilter == "" || statusFilter == StatusFilterAll || StatusSlug(job.Status) == statusFilter

		matchesSearch := strings.Contains(strings.ToLower(strings.Join(job.Title, ", ")), searchTerm) ||
			strings.Contains(strings.ToLower(job.Company), searchTerm)

		return matchesStatus && matchesSearch
	})
}
