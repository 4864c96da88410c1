package ai

import (
	"context"
	"net"
	"net/url"

	"github.com/openai/openai-go/v3"

	"minerva/pkg/errors"
)

// ClassifyError maps a raw error from the model SDK onto the engine's error
// taxonomy. Connectivity problems, timeouts, throttling and provider-side
// outages become ErrModelConnection (retryable); everything else becomes
// ErrExternal (not retryable).
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == 429 || apierr.StatusCode >= 500 {
			return errors.Wrapf(errors.ErrModelConnection, "openai API error (%d)", apierr.StatusCode)
		}
		return errors.Wrapf(errors.ErrExternal, "openai API error (%d): %s", apierr.StatusCode, apierr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrModelConnection, "request deadline exceeded")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Wrapf(errors.ErrModelConnection, "network error: %v", netErr)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.Wrapf(errors.ErrModelConnection, "transport error: %v", urlErr)
	}

	return errors.Wrap(errors.ErrExternal, err.Error())
}

// IsTransient reports whether err is a retryable model-connectivity failure.
func IsTransient(err error) bool {
	return errors.Is(err, errors.ErrModelConnection)
}
