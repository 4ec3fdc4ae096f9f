package services

import (
	"context"
	"errors"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"net/http"
)

type setupNotifier interface {
	Notify(reason string) bool
}

// CredentialsMonitor periodically re-reads the database with the stored credentials
// so a revoked token or a removed connection is noticed before the next save.
type CredentialsMonitor struct {
	store    credentialStore
	verifier databaseVerifier
	notifier setupNotifier
	cron     *cron.Cron
}

func NewCredentialsMonitor(store credentialStore, verifier databaseVerifier, notifier setupNotifier,
	schedule string) (*CredentialsMonitor, error) {

	m := &CredentialsMonitor{
		store:    store,
		verifier: verifier,
		notifier: notifier,
		cron:     cron.New(),
	}

	_, err := m.cron.AddFunc(schedule, func() { m.Check(context.Background()) })
	if err != nil {
		return nil, err
	}

	m.cron.Start()
	log.Infof("credentials monitor started, schedule: %s", schedule)
	return m, nil
}

func (m *CredentialsMonitor) Stop() {
	<-m.cron.Stop().Done()
}

// Check returns true when the stored credentials are still accepted.
func (m *CredentialsMonitor) Check(ctx context.Context) bool {
	credentials, err := m.store.LoadCredentials(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load credentials: %v", err)
		return false
	}
	if credentials == nil || !credentials.Complete() {
		m.notifier.Notify("credentials are not configured")
		return false
	}

	return m.verify(ctx, *credentials)
}

func (m *CredentialsMonitor) verify(ctx context.Context, credentials entities.Credentials) bool {
	_, err := m.verifier.RetrieveDatabase(ctx, credentials.Token, credentials.CollectionID)
	if err == nil {
		log.Debugf("stored credentials verified for database %s", credentials.CollectionID)
		return true
	}

	var authErr *notion.AuthError
	var apiErr *notion.APIError
	switch {
	case errors.As(err, &authErr):
		m.notifier.Notify("integration token was rejected")
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		m.notifier.Notify("database is no longer shared with the integration")
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotionAPI).
			Errorf("failed to verify stored credentials: %v", err)
	}
	return false
}
