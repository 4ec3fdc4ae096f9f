package scraper

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-saver/internal/entities"
	log "github.com/sirupsen/logrus"
	"net/http"
	"net/url"
	"time"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; JobSaver/1.0)"

var ErrNotJobPage = errors.New("not a job details page")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Error is a failed page load. Retryable failures are tried again until the attempts run out.
type Error struct {
	URL       string
	Message   string
	Retryable bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher loads a job page over HTTP and scrapes it, retrying while the page comes back
// empty or the server fails.
type Fetcher struct {
	httpClient  HTTPClient
	userAgent   string
	maxAttempts int
	retryDelay  time.Duration
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		userAgent:   DefaultUserAgent,
		maxAttempts: MaxAttempts,
		retryDelay:  time.Second,
	}
}

func (f *Fetcher) SetHTTPClient(client HTTPClient) {
	f.httpClient = client
}

func (f *Fetcher) SetRetryDelay(delay time.Duration) {
	f.retryDelay = delay
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (entities.ScrapedJob, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return entities.ScrapedJob{}, &Error{URL: pageURL, Message: "invalid URL", Cause: err}
	}

	attempts := NewAttempts(f.maxAttempts)
	var lastErr error
	for attempts.Next(pageURL) {
		job, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			return job, nil
		}
		lastErr = err

		var fetchErr *Error
		if !errors.As(err, &fetchErr) || !fetchErr.Retryable {
			return entities.ScrapedJob{}, err
		}
		log.Debugf("attempt %d to load %s failed: %v", attempts.Count(), pageURL, err)
		if attempts.Exhausted() {
			break
		}

		select {
		case <-ctx.Done():
			return entities.ScrapedJob{}, ctx.Err()
		case <-time.After(f.retryDelay):
		}
	}

	return entities.ScrapedJob{}, fmt.Errorf("giving up after %d attempts: %w", attempts.Count(), lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) (entities.ScrapedJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return entities.ScrapedJob{}, &Error{URL: pageURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return entities.ScrapedJob{}, &Error{URL: pageURL, Message: "HTTP request failed", Cause: err, Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return entities.ScrapedJob{}, &Error{URL: pageURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode), Retryable: retryable}
	}

	page, err := Parse(resp.Body, pageURL)
	if err != nil {
		return entities.ScrapedJob{}, &Error{URL: pageURL, Message: "failed to parse page", Cause: err}
	}
	if !page.IsJobPage() {
		return entities.ScrapedJob{}, ErrNotJobPage
	}

	job := page.Extract()
	if len(job.Title) == 0 && job.Company == "" {
		return entities.ScrapedJob{}, &Error{URL: pageURL, Message: "job details not rendered yet", Retryable: true}
	}
	return job, nil
}
