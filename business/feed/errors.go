package feed

import (
	"errors"
	"fmt"

	"andaMarket/domain"
)

// Composition failures (empty or unusable pool) are hard, typed errors; the
// caller keeps already-rendered sections and shows a retry affordance.
// Upstream degradations (campaigns, preferences) never become errors; they
// surface as warnings on an otherwise valid response.
var ErrEmptyPool = errors.New("candidate pool is empty")

type CompositionError struct {
	Stage string
	Err   error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("feed composition failed at %s: %v", e.Stage, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

func composeFailed(stage string, err error) error {
	return &CompositionError{Stage: stage, Err: err}
}

const (
	WarnCampaignsUnavailable   = "CAMPAIGNS_UNAVAILABLE"
	WarnPreferencesUnavailable = "PREFERENCES_UNAVAILABLE"
)

func warning(code, message string) domain.FeedWarning {
	return domain.FeedWarning{Code: code, Message: message}
}
