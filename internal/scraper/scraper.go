package scraper

import (
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/maxaizer/job-saver/internal/entities"
	"io"
	"regexp"
	"strings"
)

var jobIDPattern = regexp.MustCompile(`view/(\d+)`)

// Page is a parsed LinkedIn page together with the URL it was loaded from.
type Page struct {
	URL string
	doc *goquery.Document
}

func Parse(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{URL: pageURL, doc: doc}, nil
}

// IsJobPage reports whether the page shows a single job's details. Collection and search
// views only count once the details pane with its action buttons is rendered.
func (p *Page) IsJobPage() bool {
	switch {
	case strings.Contains(p.URL, "/jobs/view/"):
		return true
	case strings.Contains(p.URL, "/jobs/collections/"), strings.Contains(p.URL, "/jobs/search/"):
		return p.hasButtonContainer()
	default:
		return false
	}
}

func (p *Page) hasButtonContainer() bool {
	for _, selector := range buttonContainerSelectors {
		if p.doc.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}

func (p *Page) Extract() entities.ScrapedJob {
	title := p.findContent(titleSelectors)
	if title == "" {
		title = p.titleFromJobCard()
	}

	job := entities.ScrapedJob{
		Company:     p.findContent(companySelectors),
		Location:    p.findContent(locationSelectors),
		URL:         p.URL,
		Description: p.findContent(descriptionSelectors),
	}
	if title != "" {
		job.Title = entities.MultiValue{title}
	}
	return job
}

// findContent returns the text of the first selector matching an element with non-blank text.
func (p *Page) findContent(selectors []string) string {
	for _, selector := range selectors {
		if text := cleanWhitespace(p.doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// titleFromJobCard looks the title up in the list of job cards by the id in the URL.
func (p *Page) titleFromJobCard() string {
	match := jobIDPattern.FindStringSubmatch(p.URL)
	if match == nil {
		return ""
	}
	selector := fmt.Sprintf(`[data-job-id="%s"] %s`, match[1], jobCardTitleSelector)
	return cleanWhitespace(p.doc.Find(selector).First().Text())
}

// Extract parses a page and scrapes the job it shows.
func Extract(r io.Reader, pageURL string) (entities.ScrapedJob, error) {
	page, err := Parse(r, pageURL)
	if err != nil {
		return entities.ScrapedJob{}, err
	}
	if !page.IsJobPage() {
		return entities.ScrapedJob{}, ErrNotJobPage
	}
	return page.Extract(), nil
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
