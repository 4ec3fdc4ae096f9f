package main

import (
	"encoding/json"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/config"
	"github.com/maxaizer/job-saver/internal/events"
	"github.com/maxaizer/job-saver/internal/logger"
	"github.com/maxaizer/job-saver/internal/repositories"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/maxaizer/job-saver/internal/services"
	log "github.com/sirupsen/logrus"
	"io"
)

// app holds everything a command needs, wired from the config file.
type app struct {
	cfg       *config.Config
	dbContext *repositories.DbContext
	store     *repositories.Settings
	client    *notion.Client
	gateway   *services.Gateway
	settings  *services.Settings
	bus       EventBus.Bus
	notifier  *services.SetupNotifier
	router    *router.Router
}

func newApp() (*app, error) {
	cfg := config.Get()
	logger.Setup(cfg.Logger)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		logger.Cleanup()
		return nil, err
	}
	if err = dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		logger.Cleanup()
		return nil, err
	}

	client := notion.NewClient()
	client.SetBaseURL(cfg.Notion.BaseURL)
	client.SetAPIVersion(cfg.Notion.APIVersion)
	client.SetRateLimit(cfg.Notion.MaxRequestsPerSecond)

	store := repositories.NewSettingsRepository(dbContext.DB)
	bus := EventBus.New()
	notifier := services.NewSetupNotifier(bus, cfg.Server.SetupPromptQuietPeriod)
	gateway := services.NewGateway(store, client, cfg.Notion.StatusPropertyType)

	err = bus.Subscribe(events.SetupRequiredTopic, func(event events.SetupRequired) {
		log.Warnf("notion setup required (%s): run `job-saver setup` or open the extension settings", event.Reason)
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeConfig).Errorf("can't subscribe to setup events: %v", err)
	}

	return &app{
		cfg:       cfg,
		dbContext: dbContext,
		store:     store,
		client:    client,
		gateway:   gateway,
		settings:  services.NewSettings(store, client),
		bus:       bus,
		notifier:  notifier,
		router:    router.New(gateway, store, notifier),
	}, nil
}

func (a *app) Close() {
	if err := a.dbContext.Close(); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("can't close db: %v", err)
	}
	logger.Cleanup()
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// responseError turns a failed envelope into a command error.
func responseError(response router.Response) error {
	if response.OK {
		return nil
	}
	if response.SetupRequired {
		return errors.New(response.Error + " (run `job-saver setup --token <token> --collection <database url or id>`)")
	}
	return errors.New(response.Error)
}
