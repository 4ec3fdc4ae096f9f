package scraper

// LinkedIn markup differs between the signed-in app, the search split view and the public guest page,
// so every field has a list of candidates tried in order.
var (
	titleSelectors = []string{
		".jobs-unified-top-card__job-title",
		".job-details-jobs-unified-top-card__job-title",
		".jobs-search__job-details--title",
		".top-card-layout__title",
	}
	companySelectors = []string{
		".jobs-unified-top-card__company-name",
		".job-details-jobs-unified-top-card__company-name",
		".jobs-unified-top-card__subtitle-primary",
		".topcard__org-name-link",
	}
	locationSelectors = []string{
		".jobs-unified-top-card__bullet",
		".job-details-jobs-unified-top-card__bullet",
		".jobs-unified-top-card__subtitle-primary-grouping .jobs-unified-top-card__bullet",
		".topcard__flavor--bullet",
	}
	descriptionSelectors = []string{
		".jobs-description__content",
		".jobs-box__html-content",
		".show-more-less-html__markup",
	}
	buttonContainerSelectors = []string{
		".jobs-unified-top-card__actions",
		".jobs-unified-top-card__button-container",
		".jobs-s-apply",
	}
)

const jobCardTitleSelector = ".job-card-list__title"
