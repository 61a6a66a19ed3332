package checker_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/refcheck/internal/checker"
	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/models"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   models.Status
	}{
		{"valid and eligible", http.StatusOK, `{"isValid":true,"userIsEligible":true}`, models.StatusActive},
		{"valid not eligible", http.StatusOK, `{"isValid":true,"userIsEligible":false}`, models.StatusRedeemed},
		{"invalid but eligible", http.StatusOK, `{"isValid":false,"userIsEligible":true}`, models.StatusRedeemed},
		{"empty object", http.StatusOK, `{}`, models.StatusRedeemed},
		{"unrecognised fields", http.StatusOK, `{"foo":1}`, models.StatusUnknown},
		{"only one field", http.StatusOK, `{"isValid":true}`, models.StatusUnknown},
		{"non boolean fields", http.StatusOK, `{"isValid":"yes","userIsEligible":true}`, models.StatusUnknown},
		{"array body", http.StatusOK, `[]`, models.StatusUnknown},
		{"null body", http.StatusOK, `null`, models.StatusUnknown},
		{"malformed body", http.StatusOK, `<html>oops</html>`, models.StatusUnknown},
		{"not found", http.StatusNotFound, `{"isValid":true,"userIsEligible":true}`, models.StatusUnknown},
		{"server fault", http.StatusInternalServerError, `{}`, models.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, checker.Classify(tt.status, []byte(tt.body)))
		})
	}
}

func TestParseVerdict_Malformed(t *testing.T) {
	t.Parallel()

	status, err := checker.ParseVerdict([]byte("not json"))

	require.ErrorIs(t, err, customerrors.ErrMalformedResponse)
	assert.Equal(t, models.StatusUnknown, status)
}
