package router

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

const pageID = "59833787-2cf9-4fdf-8782-e53db20768a5"

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateRecord(ctx context.Context, job entities.ScrapedJob) (string, error) {
	args := m.Called(ctx, job)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockGateway) QueryRecords(ctx context.Context) ([]entities.JobRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]entities.JobRecord)
	return records, args.Error(1)
}

type stubStore struct {
	credentials *entities.Credentials
	err         error
}

func (s stubStore) LoadCredentials(_ context.Context) (*entities.Credentials, error) {
	return s.credentials, s.err
}

type recordingNotifier struct {
	reasons []string
}

func (n *recordingNotifier) Notify(reason string) bool {
	n.reasons = append(n.reasons, reason)
	return true
}

var configured = stubStore{credentials: &entities.Credentials{Token: "ntn_x", CollectionID: "abcdef0123456789abcdef0123456789"}}

func Test_Router_CheckAuth_ShouldOnlyLookAtStoredCredentials(t *testing.T) {
	gateway := &mockGateway{}
	notifier := &recordingNotifier{}

	response := New(gateway, configured, notifier).Dispatch(context.Background(), CheckAuth())

	require.NotNil(t, response.Authenticated)
	assert.True(t, *response.Authenticated)
	assert.False(t, response.SetupRequired)
	assert.Empty(t, notifier.reasons)
	gateway.AssertNotCalled(t, "QueryRecords", mock.Anything)
}

func Test_Router_CheckAuth_WhenNotConfigured_ShouldAskForSetup(t *testing.T) {
	notifier := &recordingNotifier{}

	response := New(&mockGateway{}, stubStore{}, notifier).Dispatch(context.Background(), CheckAuth())

	require.NotNil(t, response.Authenticated)
	assert.False(t, *response.Authenticated)
	assert.True(t, response.SetupRequired)
	assert.Len(t, notifier.reasons, 1)
}

func Test_Router_WhenNotAuthenticated_ShouldNotCallGateway(t *testing.T) {
	gateway := &mockGateway{}
	router := New(gateway, stubStore{credentials: &entities.Credentials{Token: "ntn_x"}}, &recordingNotifier{})

	for _, request := range []Request{SaveJob(entities.ScrapedJob{}), UpdateStatus(pageID, "Applied"), FetchJobs()} {
		response := router.Dispatch(context.Background(), request)

		assert.False(t, response.OK)
		assert.True(t, response.SetupRequired)
		assert.NotEmpty(t, response.Error)
	}
	gateway.AssertExpectations(t)
}

func Test_Router_SaveJob_ShouldReturnCreatedID(t *testing.T) {
	job := entities.ScrapedJob{Title: entities.MultiValue{"Go developer"}, Company: "Acme"}
	gateway := &mockGateway{}
	gateway.On("CreateRecord", mock.Anything, job).Return(pageID, nil).Once()

	response := New(gateway, configured, &recordingNotifier{}).Dispatch(context.Background(), SaveJob(job))

	assert.True(t, response.OK)
	assert.Equal(t, SavedJob{ID: pageID}, response.Data)
	gateway.AssertExpectations(t)
}

func Test_Router_WhenGatewayReturnsAuthError_ShouldFlagSetup(t *testing.T) {
	gateway := &mockGateway{}
	gateway.On("QueryRecords", mock.Anything).
		Return(nil, &notion.AuthError{Status: 401, Code: notion.CodeUnauthorized, Message: "API token is invalid."})
	notifier := &recordingNotifier{}

	response := New(gateway, configured, notifier).Dispatch(context.Background(), FetchJobs())

	assert.False(t, response.OK)
	assert.True(t, response.SetupRequired)
	assert.Contains(t, response.Error, "unauthorized")
	assert.Len(t, notifier.reasons, 1)
}

func Test_Router_WhenGatewayReturnsAPIError_ShouldReturnMessage(t *testing.T) {
	gateway := &mockGateway{}
	gateway.On("UpdateStatus", mock.Anything, pageID, "Applied").
		Return(&notion.APIError{Status: 400, Message: "Status is expected to be status."})
	notifier := &recordingNotifier{}

	response := New(gateway, configured, notifier).Dispatch(context.Background(), UpdateStatus(pageID, "Applied"))

	assert.False(t, response.OK)
	assert.False(t, response.SetupRequired)
	assert.Equal(t, "Status is expected to be status.", response.Error)
	assert.Empty(t, notifier.reasons)
}

func Test_Router_WhenGatewayReturnsConfigurationError_ShouldFlagSetup(t *testing.T) {
	gateway := &mockGateway{}
	gateway.On("QueryRecords", mock.Anything).Return(nil, &services.ConfigurationError{})

	response := New(gateway, configured, &recordingNotifier{}).Dispatch(context.Background(), FetchJobs())

	assert.False(t, response.OK)
	assert.True(t, response.SetupRequired)
}

func Test_Router_WhenStoreFails_ShouldReturnErrorEnvelope(t *testing.T) {
	response := New(&mockGateway{}, stubStore{err: errors.New("disk I/O error")}, &recordingNotifier{}).
		Dispatch(context.Background(), FetchJobs())

	assert.False(t, response.OK)
	assert.Equal(t, "disk I/O error", response.Error)
}

func Test_Router_WhenGatewayPanics_ShouldNotThrow(t *testing.T) {
	gateway := &mockGateway{}
	gateway.On("QueryRecords", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	var response Response
	assert.NotPanics(t, func() {
		response = New(gateway, configured, &recordingNotifier{}).Dispatch(context.Background(), FetchJobs())
	})
	assert.False(t, response.OK)
	assert.Equal(t, "internal error", response.Error)
}

func Test_Router_ShouldRejectMalformedRequests(t *testing.T) {
	router := New(&mockGateway{}, configured, &recordingNotifier{})

	cases := []Request{
		{Kind: "DELETE_JOB"},
		{Kind: KindSaveJob},
		UpdateStatus("  ", "Applied"),
	}
	for _, request := range cases {
		response := router.Dispatch(context.Background(), request)
		assert.False(t, response.OK)
		assert.False(t, response.SetupRequired)
		assert.NotEmpty(t, response.Error)
	}
}

func Test_Router_UpdateStatus_ShouldPassOpaqueIDThrough(t *testing.T) {
	gateway := &mockGateway{}
	gateway.On("UpdateStatus", mock.Anything, "59833787cf94fdf8782e53db20768a5", "Applied").Return(nil).Once()

	response := New(gateway, configured, &recordingNotifier{}).
		Dispatch(context.Background(), UpdateStatus("59833787cf94fdf8782e53db20768a5", "Applied"))

	assert.True(t, response.OK)
	gateway.AssertExpectations(t)
}

func Test_Request_UnmarshalJSON_ShouldAcceptTypeOrAction(t *testing.T) {
	var byAction, byType Request

	require.NoError(t, json.Unmarshal([]byte(`{"action": "CHECK_AUTH"}`), &byAction))
	require.NoError(t, json.Unmarshal([]byte(`{"type": "SAVE_JOB", "data": {"title": "Go developer", "company": "Acme"}}`), &byType))

	assert.Equal(t, KindCheckAuth, byAction.Kind)
	assert.Equal(t, KindSaveJob, byType.Kind)
	require.NotNil(t, byType.Job)
	assert.Equal(t, entities.MultiValue{"Go developer"}, byType.Job.Title)
}
