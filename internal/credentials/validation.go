package credentials

import (
	"fmt"
	"github.com/go-playground/validator/v10"
)

const (
	FieldToken        = "token"
	FieldCollectionID = "collection_id"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notion_token", func(fl validator.FieldLevel) bool {
		return IsValidToken(fl.Field().String())
	})
	_ = v.RegisterValidation("collection_id", func(fl validator.FieldLevel) bool {
		return IsValidCollectionID(fl.Field().String())
	})
	return v
}

// Validate checks a normalized pair in a fixed order: presence, token prefix, id shape.
func Validate(token, collectionID string) error {
	if validate.Var(token, "required") != nil || validate.Var(collectionID, "required") != nil {
		return &ValidationError{Message: "please fill in all fields"}
	}

	if validate.Var(token, "notion_token") != nil {
		return &ValidationError{
			Field:   FieldToken,
			Message: fmt.Sprintf("invalid notion token format, token should start with %q", TokenPrefix),
		}
	}

	if validate.Var(collectionID, "collection_id") != nil {
		return &ValidationError{
			Field:   FieldCollectionID,
			Message: "could not find a valid database id, make sure you've copied the correct url or id",
		}
	}

	return nil
}
