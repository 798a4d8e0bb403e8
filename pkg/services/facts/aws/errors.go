package aws

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
	"github.com/de-tools/sec-atlas/pkg/services/facts"
)

func reasonForCode(code string) facts.Reason {
	switch code {
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation", "UnauthorizedAccess",
		"AuthFailure", "InvalidClientTokenId", "ExpiredToken", "ExpiredTokenException",
		"AllAccessDisabled", "SignatureDoesNotMatch", "UnrecognizedClientException":
		return facts.ReasonDenied
	case "Throttling", "ThrottlingException", "RequestLimitExceeded", "TooManyRequestsException", "SlowDown":
		return facts.ReasonThrottled
	default:
		return facts.ReasonUnavailable
	}
}

// classify wraps an SDK error into a facts.ProviderError. nil stays nil.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	pe := &facts.ProviderError{Op: op, Reason: facts.ReasonUnavailable, Err: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		pe.Code = apiErr.ErrorCode()
		pe.Reason = reasonForCode(pe.Code)
		return pe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		pe.Code = "Timeout"
	}
	return pe
}

func hasErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
