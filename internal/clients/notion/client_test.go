package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"os"
	"testing"
)

const (
	testToken      = "ntn_testtoken"
	testDatabaseID = "abcdef0123456789abcdef0123456789"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func fileResponse(t *testing.T, status int, name string) *http.Response {
	file, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}
}

func hasNotionHeaders(req *http.Request) bool {
	return req.Header.Get("Authorization") == "Bearer "+testToken &&
		req.Header.Get("Notion-Version") == DefaultAPIVersion
}

func Test_NotionClient_QueryDatabase_ShouldReturnFirstPage(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			req.URL.String() == "https://api.notion.com/v1/databases/"+testDatabaseID+"/query" &&
			hasNotionHeaders(req)
	})).Return(fileResponse(t, http.StatusOK, "query_database.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	pages, err := client.QueryDatabase(context.Background(), testToken, testDatabaseID)
	assert.NoError(err)
	assert.Len(pages, 2)

	first := pages[0]
	assert.Equal("59833787-2cf9-4fdf-8782-e53db20768a5", first.ID)
	assert.Equal("Acme", PlainText(first.Properties["Company name"].Title))
	assert.Equal([]string{"Backend Engineer", "Go"}, first.Properties["Job title"].OptionNames())
	assert.Equal("Interviewing", first.Properties["Status"].OptionName())
	assert.Equal("https://www.linkedin.com/jobs/view/4051234567/", first.Properties["Job Link"].LinkURL())
	assert.Equal("Not started", pages[1].Properties["Status"].OptionName())
	mockClient.AssertExpectations(t)
}

func Test_NotionClient_CreatePage_ShouldSendParentAndProperties(t *testing.T) {

	assert := assert.New(t)

	var sent CreatePageRequest
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Method != http.MethodPost || req.URL.Path != "/v1/pages" || !hasNotionHeaders(req) {
			return false
		}
		return json.NewDecoder(req.Body).Decode(&sent) == nil
	})).Return(fileResponse(t, http.StatusOK, "create_page.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	page, err := client.CreatePage(context.Background(), testToken, CreatePageRequest{
		Parent:     Parent{DatabaseID: testDatabaseID},
		Properties: map[string]PropertyValue{"Company name": TitleValue("Acme")},
	})
	assert.NoError(err)
	assert.Equal("be633bf1-dfa0-436d-b259-571129a590e5", page.ID)
	assert.Equal(testDatabaseID, sent.Parent.DatabaseID)
	assert.Equal("Acme", PlainText(sent.Properties["Company name"].Title))
}

func Test_NotionClient_UpdatePage_ShouldPatchOnlyGivenProperties(t *testing.T) {

	var sent map[string]map[string]any
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Method != http.MethodPatch || req.URL.Path != "/v1/pages/page-1" {
			return false
		}
		return json.NewDecoder(req.Body).Decode(&sent) == nil
	})).Return(fileResponse(t, http.StatusOK, "create_page.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.UpdatePage(context.Background(), testToken, "page-1",
		map[string]PropertyValue{"Status": OptionValue(PropertyTypeStatus, "Applied")})
	assert.NoError(t, err)
	assert.Len(t, sent["properties"], 1)
	assert.Contains(t, sent["properties"], "Status")
}

func Test_NotionClient_WhenUnauthorized_ShouldReturnAuthError(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(fileResponse(t, http.StatusUnauthorized, "error_unauthorized.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.RetrieveDatabase(context.Background(), testToken, testDatabaseID)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, CodeUnauthorized, authErr.Code)
	assert.Contains(t, err.Error(), "unauthorized")
}

func Test_NotionClient_WhenRemoteRejectsRequest_ShouldReturnAPIErrorWithMessage(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(fileResponse(t, http.StatusBadRequest, "error_validation.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.UpdatePage(context.Background(), testToken, "page-1", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Status is expected to be status.", apiErr.Error())
}

func Test_NotionClient_WhenBodyIsNotJSON_ShouldFallBackToStatusMessage(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(bytes.NewBufferString("<html>bad gateway</html>")),
	}, nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.QueryDatabase(context.Background(), testToken, testDatabaseID)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "502")
}

func Test_NotionClient_WhenTransportFails_ShouldReturnNetworkError(t *testing.T) {

	transportErr := errors.New("connection refused")
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(nil, transportErr)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.CreatePage(context.Background(), testToken, CreatePageRequest{})

	var networkErr *NetworkError
	require.True(t, errors.As(err, &networkErr))
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, OperationCreatePage, networkErr.Op)
}

func databaseResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(`{"object": "database", "id": "` + testDatabaseID + `"}`)),
	}
}

func Test_NotionClient_WithZeroRateLimit_ShouldNotThrottle(t *testing.T) {

	mockClient := &mockHTTPClient{}
	for i := 0; i < 3; i++ {
		mockClient.On("Do", mock.Anything).Return(databaseResponse(), nil).Once()
	}

	client := NewClient()
	client.SetHTTPClient(mockClient)
	client.SetRateLimit(0)

	for i := 0; i < 3; i++ {
		database, err := client.RetrieveDatabase(context.Background(), testToken, testDatabaseID)
		require.NoError(t, err)
		assert.Equal(t, testDatabaseID, database.ID)
	}
	mockClient.AssertNumberOfCalls(t, "Do", 3)
}

func Test_NotionClient_WhenSuccessBodyIsNotJSON_ShouldReturnNetworkError(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("<html>captive portal</html>")),
	}, nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	_, err := client.QueryDatabase(context.Background(), testToken, testDatabaseID)

	var networkErr *NetworkError
	require.True(t, errors.As(err, &networkErr))
	assert.Equal(t, OperationQueryDatabase, networkErr.Op)
	assert.Contains(t, err.Error(), "error decoding JSON response")
}
