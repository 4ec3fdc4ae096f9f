package scraper

import (
	"context"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher() *Fetcher {
	fetcher := NewFetcher()
	fetcher.SetRetryDelay(0)
	return fetcher
}

func Test_Fetcher_ShouldRetryUntilDetailsRendered(t *testing.T) {
	fixture, err := os.ReadFile("testdata/job_view.html")
	require.NoError(t, err)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			_, _ = w.Write([]byte("<html><body><div class=\"loading\"></div></body></html>"))
		default:
			_, _ = w.Write(fixture)
		}
	}))
	defer server.Close()

	job, err := newTestFetcher().Fetch(context.Background(), server.URL+"/jobs/view/3901234567/")

	require.NoError(t, err)
	assert.Equal(t, entities.MultiValue{"Senior Go developer"}, job.Title)
	assert.Equal(t, int32(3), calls.Load())
}

func Test_Fetcher_ShouldGiveUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL+"/jobs/view/1")

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(MaxAttempts), calls.Load())
}

func Test_Fetcher_WhenNotFound_ShouldNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL+"/jobs/view/1")

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func Test_Fetcher_WhenNotJobPage_ShouldFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>feed</body></html>"))
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL+"/feed/")

	assert.ErrorIs(t, err, ErrNotJobPage)
}

func Test_Fetcher_WithInvalidURL_ShouldFail(t *testing.T) {
	_, err := newTestFetcher().Fetch(context.Background(), "not-a-valid-url")

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func Test_Fetcher_AfterLastAttempt_ShouldNotWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewFetcher()
	fetcher.maxAttempts = 1
	fetcher.SetRetryDelay(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := fetcher.Fetch(ctx, server.URL+"/jobs/view/1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "giving up after 1 attempts")
}
