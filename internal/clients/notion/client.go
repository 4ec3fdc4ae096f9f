package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/job-saver/internal/metrics"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL    = "https://api.notion.com/v1"
	DefaultAPIVersion = "2022-06-28"
)

const (
	OperationCreatePage       = "create_page"
	OperationUpdatePage       = "update_page"
	OperationQueryDatabase    = "query_database"
	OperationRetrieveDatabase = "retrieve_database"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	apiVersion  string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// SetRateLimit limits outgoing requests, zero or less removes the limit.
func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

func (c *Client) SetAPIVersion(version string) {
	c.apiVersion = version
}

func (c *Client) CreatePage(ctx context.Context, token string, request CreatePageRequest) (*Page, error) {

	body, err := c.sendRequest(ctx, OperationCreatePage, http.MethodPost, "/pages", token, request)
	if err != nil {
		return nil, err
	}

	var page Page
	if err = decodeBody(OperationCreatePage, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdatePage(ctx context.Context, token, pageID string, properties map[string]PropertyValue) (*Page, error) {

	path := "/pages/" + url.PathEscape(pageID)
	body, err := c.sendRequest(ctx, OperationUpdatePage, http.MethodPatch, path, token,
		updatePageRequest{Properties: properties})
	if err != nil {
		return nil, err
	}

	var page Page
	if err = decodeBody(OperationUpdatePage, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// QueryDatabase returns only the first page of results, no filter and no cursor are sent.
func (c *Client) QueryDatabase(ctx context.Context, token, databaseID string) ([]Page, error) {

	path := "/databases/" + url.PathEscape(databaseID) + "/query"
	body, err := c.sendRequest(ctx, OperationQueryDatabase, http.MethodPost, path, token, struct{}{})
	if err != nil {
		return nil, err
	}

	var response queryDatabaseResponse
	if err = decodeBody(OperationQueryDatabase, body, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

func (c *Client) RetrieveDatabase(ctx context.Context, token, databaseID string) (*Database, error) {

	path := "/databases/" + url.PathEscape(databaseID)
	body, err := c.sendRequest(ctx, OperationRetrieveDatabase, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	var database Database
	if err = decodeBody(OperationRetrieveDatabase, body, &database); err != nil {
		return nil, err
	}
	return &database, nil
}

// decodeBody treats an undecodable success body like an unreadable one.
func decodeBody(operation string, body []byte, v any) error {
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(v); err != nil {
		return &NetworkError{Op: operation, Err: fmt.Errorf("error decoding JSON response: %w", err)}
	}
	return nil
}

func (c *Client) sendRequest(ctx context.Context, operation, method, path, token string, payload any) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Op: operation, Err: err}
		}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error encoding request: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Notion-Version", c.apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.NotionRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.NotionRequestsCounter.WithLabelValues(operation, "network_error").Inc()
		return nil, &NetworkError{Op: operation, Err: err}
	}
	defer resp.Body.Close()

	return c.handleResponse(operation, resp)
}

func (c *Client) handleResponse(operation string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.NotionRequestsCounter.WithLabelValues(operation, "network_error").Inc()
		return nil, &NetworkError{Op: operation, Err: fmt.Errorf("error reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := classifyFailure(operation, resp.StatusCode, body)
		metrics.NotionRequestsCounter.WithLabelValues(operation, outcomeOf(failure)).Inc()
		return nil, failure
	}

	metrics.NotionRequestsCounter.WithLabelValues(operation, "ok").Inc()
	return body, nil
}

func outcomeOf(err error) string {
	if _, ok := err.(*AuthError); ok {
		return "auth_error"
	}
	return "api_error"
}
