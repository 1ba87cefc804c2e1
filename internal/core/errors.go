package core

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks a malformed SearchRequest. It is returned before
// orchestration starts and never mid-run.
var ErrInvalidRequest = errors.New("invalid search request")

// ErrProviderConfig marks a provider that cannot be constructed, usually
// missing credentials. Surfaced at registry build time, before any search.
var ErrProviderConfig = errors.New("provider configuration")

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}
