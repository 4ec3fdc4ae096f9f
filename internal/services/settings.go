package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"github.com/maxaizer/job-saver/internal/credentials"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
)

type credentialRepository interface {
	LoadCredentials(ctx context.Context) (*entities.Credentials, error)
	SaveCredentials(ctx context.Context, credentials entities.Credentials) error
	ClearCredentials(ctx context.Context) error
}

type databaseVerifier interface {
	RetrieveDatabase(ctx context.Context, token, databaseID string) (*notion.Database, error)
}

type SettingsView struct {
	Token        string `json:"token"`
	TokenMasked  bool   `json:"tokenMasked"`
	CollectionID string `json:"collection"`
	Configured   bool   `json:"configured"`
}

type SaveSettingsRequest struct {
	Token          string `json:"token"`
	TokenUntouched bool   `json:"tokenUntouched"`
	Collection     string `json:"collection"`
}

// Settings owns the only write path into the credential store.
type Settings struct {
	store    credentialRepository
	verifier databaseVerifier
}

func NewSettings(store credentialRepository, verifier databaseVerifier) *Settings {
	return &Settings{store: store, verifier: verifier}
}

// View presents stored credentials for the settings form, the token only masked.
func (s *Settings) View(ctx context.Context) (SettingsView, error) {
	stored, err := s.store.LoadCredentials(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	if stored == nil {
		return SettingsView{}, nil
	}

	return SettingsView{
		Token:        credentials.MaskToken(stored.Token),
		TokenMasked:  true,
		CollectionID: stored.CollectionID,
		Configured:   true,
	}, nil
}

// Save normalizes and validates the input, verifies it against Notion and only then stores it.
func (s *Settings) Save(ctx context.Context, request SaveSettingsRequest) (entities.Credentials, error) {
	stored, err := s.store.LoadCredentials(ctx)
	if err != nil {
		return entities.Credentials{}, err
	}

	var storedToken string
	if stored != nil {
		storedToken = stored.Token
	}

	candidate := entities.Credentials{
		Token:        credentials.ResolveToken(request.Token, request.TokenUntouched, storedToken),
		CollectionID: credentials.NormalizeCollectionID(request.Collection),
	}

	if err = credentials.Validate(candidate.Token, candidate.CollectionID); err != nil {
		return entities.Credentials{}, err
	}

	if err = s.Verify(ctx, candidate); err != nil {
		return entities.Credentials{}, err
	}

	if err = s.store.SaveCredentials(ctx, candidate); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save credentials: %v", err)
		return entities.Credentials{}, err
	}

	log.Infof("credentials saved for database %s, token %s", candidate.CollectionID, credentials.MaskToken(candidate.Token))
	return candidate, nil
}

// Clear forgets both credentials, the next remote call asks for setup again.
func (s *Settings) Clear(ctx context.Context) error {
	if err := s.store.ClearCredentials(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clear credentials: %v", err)
		return err
	}
	log.Info("credentials cleared")
	return nil
}

// Verify reads the database with the given credentials, Notion has the final word on them.
func (s *Settings) Verify(ctx context.Context, candidate entities.Credentials) error {
	_, err := s.verifier.RetrieveDatabase(ctx, candidate.Token, candidate.CollectionID)
	if err == nil {
		return nil
	}

	log.Warnf("credentials verification failed for database %s: %v", candidate.CollectionID, err)

	var apiErr *notion.APIError
	var authErr *notion.AuthError
	var networkErr *notion.NetworkError

	switch {
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return &VerificationError{Err: err, Message: "database not found or not accessible: open the database in " +
			"Notion, click \"...\" in the top right, select \"Add connections\", pick your integration and try again"}
	case errors.As(err, &authErr) && authErr.Code == notion.CodeUnauthorized:
		return &VerificationError{Err: err, Message: "invalid integration token, please check your token and try again"}
	case errors.As(err, &authErr):
		return &VerificationError{Err: err, Message: "could not access the notion database, " +
			"please check your credentials and database permissions"}
	case errors.As(err, &networkErr):
		return &VerificationError{Err: err, Message: "failed to validate credentials, " +
			"please check your connection and try again"}
	default:
		return &VerificationError{Err: err, Message: fmt.Sprintf("failed to validate credentials: %v", err)}
	}
}
