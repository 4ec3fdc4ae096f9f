package services

import (
	"context"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"time"
)

type credentialStore interface {
	LoadCredentials(ctx context.Context) (*entities.Credentials, error)
}

type notionClient interface {
	CreatePage(ctx context.Context, token string, request notion.CreatePageRequest) (*notion.Page, error)
	UpdatePage(ctx context.Context, token, pageID string, properties map[string]notion.PropertyValue) (*notion.Page, error)
	QueryDatabase(ctx context.Context, token, databaseID string) ([]notion.Page, error)
}

// Gateway is the only component issuing calls to Notion on behalf of the user.
type Gateway struct {
	store      credentialStore
	client     notionClient
	statusType string
	now        func() time.Time
}

func NewGateway(store credentialStore, client notionClient, statusType string) *Gateway {
	if statusType == "" {
		statusType = notion.PropertyTypeStatus
	}
	return &Gateway{store: store, client: client, statusType: statusType, now: time.Now}
}

func (g *Gateway) CreateRecord(ctx context.Context, job entities.ScrapedJob) (string, error) {
	credentials, err := g.credentials(ctx)
	if err != nil {
		return "", err
	}

	page, err := g.client.CreatePage(ctx, credentials.Token, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseID: credentials.CollectionID},
		Properties: jobProperties(job, g.now(), g.statusType),
	})
	if err != nil {
		return "", err
	}

	log.Infof("job saved to notion as page %s", page.ID)
	return page.ID, nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, id string, status string) error {
	credentials, err := g.credentials(ctx)
	if err != nil {
		return err
	}

	_, err = g.client.UpdatePage(ctx, credentials.Token, id, map[string]notion.PropertyValue{
		PropertyStatus: notion.OptionValue(g.statusType, status),
	})
	if err != nil {
		return err
	}

	log.Infof("status of page %s updated to %q", id, status)
	return nil
}

// QueryRecords returns whatever Notion serves as the first page of the database.
func (g *Gateway) QueryRecords(ctx context.Context) ([]entities.JobRecord, error) {
	credentials, err := g.credentials(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := g.client.QueryDatabase(ctx, credentials.Token, credentials.CollectionID)
	if err != nil {
		return nil, err
	}

	return lo.Map(pages, func(page notion.Page, _ int) entities.JobRecord {
		return recordFromPage(page)
	}), nil
}

func (g *Gateway) credentials(ctx context.Context) (*entities.Credentials, error) {
	credentials, err := g.store.LoadCredentials(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load credentials: %v", err)
		return nil, errors.Wrap(err, "can't load credentials")
	}
	if credentials == nil || !credentials.Complete() {
		return nil, &ConfigurationError{}
	}
	return credentials, nil
}
