package server

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-saver/internal/credentials"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/maxaizer/job-saver/internal/services"
	"net/http"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// dispatch always answers 200 once the request parses, failures travel in the envelope.
func (s *Server) dispatch(c *gin.Context) {
	var request router.Request
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, router.Response{OK: false, Error: "invalid JSON format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.Dispatch(c.Request.Context(), request))
}

func (s *Server) viewSettings(c *gin.Context) {
	view, err := s.settings.View(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": view})
}

func (s *Server) saveSettings(c *gin.Context) {
	var request services.SaveSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON format: " + err.Error()})
		return
	}

	saved, err := s.settings.Save(c.Request.Context(), request)
	if err != nil {
		var validationErr *credentials.ValidationError
		var verificationErr *services.VerificationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": validationErr.Message, "field": validationErr.Field})
		case errors.As(err, &verificationErr):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verificationErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": services.SettingsView{
		Token:        credentials.MaskToken(saved.Token),
		TokenMasked:  true,
		CollectionID: saved.CollectionID,
		Configured:   true,
	}})
}

func (s *Server) clearSettings(c *gin.Context) {
	if err := s.settings.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": services.SettingsView{}})
}
