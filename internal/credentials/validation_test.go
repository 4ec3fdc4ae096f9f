package credentials

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

const validID = "abcdef0123456789abcdef0123456789"

func Test_Validate_WhenValidPair_ShouldPass(t *testing.T) {
	assert.NoError(t, Validate("ntn_token", validID))
	assert.NoError(t, Validate("ntn_token", "abcdef01-2345-6789-abcd-ef0123456789"))
}

func Test_Validate_ShouldReportFirstFailureInOrder(t *testing.T) {
	cases := []struct {
		name         string
		token        string
		collectionID string
		field        string
	}{
		{"both empty", "", "", ""},
		{"empty id with bad token", "secret_x", "", ""},
		{"bad token and bad id", "secret_x", "nope", FieldToken},
		{"bad id", "ntn_x", "nope", FieldCollectionID},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.token, c.collectionID)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, c.field, validationErr.Field)
		})
	}
}
