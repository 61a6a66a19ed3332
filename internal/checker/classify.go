// Package checker resolves referral codes to a status by asking the status authority,
// either directly over HTTP or by watching a browser load the referral page.
package checker

import (
	"context"
	"encoding/json"
	"fmt"

	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/models"
)

// Checker resolves one referral to a status. Implementations never fail: every
// fault degrades to models.StatusUnknown.
type Checker interface {
	Check(ctx context.Context, ref models.Referral) models.Status
}

// Mode names the front-end that produced a status, used in logs and metrics.
type Mode string

const (
	ModeHTTP    Mode = "http"
	ModeBrowser Mode = "browser"
	ModePage    Mode = "page"
)

const (
	fieldValid    = "isValid"
	fieldEligible = "userIsEligible"
)

// Classify maps a status-check response to a Status. It is shared by every front-end.
func Classify(statusCode int, body []byte) models.Status {
	if statusCode < 200 || statusCode > 299 {
		return models.StatusUnknown
	}
	status, err := ParseVerdict(body)
	if err != nil {
		return models.StatusUnknown
	}
	return status
}

// ParseVerdict classifies a response body. A body that is not JSON returns
// customerrors.ErrMalformedResponse so callers can treat it as a transport fault.
func ParseVerdict(body []byte) (models.Status, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.StatusUnknown, fmt.Errorf("%w: %v", customerrors.ErrMalformedResponse, err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return models.StatusUnknown, nil
	}
	if len(obj) == 0 {
		return models.StatusRedeemed, nil
	}

	valid, okValid := obj[fieldValid].(bool)
	eligible, okEligible := obj[fieldEligible].(bool)
	if !okValid || !okEligible {
		return models.StatusUnknown, nil
	}
	if valid && eligible {
		return models.StatusActive, nil
	}
	return models.StatusRedeemed, nil
}
