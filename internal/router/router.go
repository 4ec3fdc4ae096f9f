package router

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/logger"
	"github.com/maxaizer/job-saver/internal/metrics"
	"github.com/maxaizer/job-saver/internal/services"
	log "github.com/sirupsen/logrus"
	"strings"
)

type gateway interface {
	CreateRecord(ctx context.Context, job entities.ScrapedJob) (string, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	QueryRecords(ctx context.Context) ([]entities.JobRecord, error)
}

type credentialStore interface {
	LoadCredentials(ctx context.Context) (*entities.Credentials, error)
}

type setupNotifier interface {
	Notify(reason string) bool
}

type Router struct {
	gateway  gateway
	store    credentialStore
	notifier setupNotifier
}

func New(gateway gateway, store credentialStore, notifier setupNotifier) *Router {
	return &Router{gateway: gateway, store: store, notifier: notifier}
}

func (r *Router) Dispatch(ctx context.Context, request Request) (response Response) {
	defer func() {
		if p := recover(); p != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeServer).Errorf("panic while handling %s: %v", request.Kind, p)
			response = Response{OK: false, Error: "internal error"}
		}
		metrics.DispatchedRequestsCounter.WithLabelValues(string(request.Kind), resultOf(response)).Inc()
	}()

	log.Debugf("received request %s", request.Kind)

	if request.Kind == KindCheckAuth {
		return r.checkAuth(ctx)
	}

	if err := validate(request); err != nil {
		return Response{OK: false, Error: err.Error()}
	}

	authenticated, err := r.isAuthenticated(ctx)
	if err != nil {
		return r.failure(request.Kind, err)
	}
	if !authenticated {
		r.notifier.Notify("credentials are not configured")
		return Response{OK: false, Error: (&services.ConfigurationError{}).Error(), SetupRequired: true}
	}

	switch request.Kind {
	case KindSaveJob:
		id, err := r.gateway.CreateRecord(ctx, *request.Job)
		if err != nil {
			return r.failure(request.Kind, err)
		}
		return Response{OK: true, Data: SavedJob{ID: id}}

	case KindUpdateStatus:
		if err := r.gateway.UpdateStatus(ctx, request.ID, request.Status); err != nil {
			return r.failure(request.Kind, err)
		}
		return Response{OK: true, Data: UpdatedStatus{ID: request.ID, Status: request.Status}}

	default:
		records, err := r.gateway.QueryRecords(ctx)
		if err != nil {
			return r.failure(request.Kind, err)
		}
		return Response{OK: true, Data: records}
	}
}

func (r *Router) checkAuth(ctx context.Context) Response {
	authenticated, err := r.isAuthenticated(ctx)
	if err != nil {
		return r.failure(KindCheckAuth, err)
	}
	if !authenticated {
		r.notifier.Notify("credentials are not configured")
	}
	return Response{OK: true, Authenticated: &authenticated, SetupRequired: !authenticated}
}

// isAuthenticated only checks that both credentials are present, Notion is not asked.
func (r *Router) isAuthenticated(ctx context.Context) (bool, error) {
	credentials, err := r.store.LoadCredentials(ctx)
	if err != nil {
		return false, err
	}
	return credentials != nil && credentials.Complete(), nil
}

func (r *Router) failure(kind Kind, err error) Response {
	response := Response{OK: false, Error: err.Error()}

	var authErr *notion.AuthError
	var configErr *services.ConfigurationError
	switch {
	case errors.As(err, &authErr):
		response.SetupRequired = true
		r.notifier.Notify("integration token or database access was rejected")
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotionAPI).Warnf("%s rejected by notion: %v", kind, err)
	case errors.As(err, &configErr):
		response.SetupRequired = true
		r.notifier.Notify("credentials are not configured")
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotionAPI).Errorf("%s failed: %v", kind, err)
	}

	return response
}

func validate(request Request) error {
	switch request.Kind {
	case KindSaveJob:
		if request.Job == nil {
			return errors.New("missing job data")
		}
	case KindUpdateStatus:
		if strings.TrimSpace(request.ID) == "" {
			return errors.New("missing job id")
		}
	case KindFetchJobs:
	default:
		return fmt.Errorf("unknown request type %q", request.Kind)
	}
	return nil
}

func resultOf(response Response) string {
	switch {
	case response.OK:
		return "ok"
	case response.SetupRequired:
		return "setup_required"
	default:
		return "error"
	}
}
