package service

import (
	"strings"

	"bayou-blog/internal/messages"
	"bayou-blog/internal/moderation"
	"bayou-blog/internal/utils"
)

// gateError converts a non-OK gate result into the request failure the
// boundary returns. Returns nil for StatusOK.
func gateError(result moderation.Result) error {
	switch result.Status {
	case moderation.StatusRejected:
		message := messages.OffensiveContent
		if len(result.FailedFields) > 0 {
			message += ": " + strings.Join(result.FailedFields, ", ")
		}
		return utils.NewAppError(utils.ErrValidationFailed, message, nil)
	case moderation.StatusQuotaExceeded:
		return utils.NewAppError(utils.ErrQuotaExceeded, messages.AIRequestQuotaExceeded, nil)
	case moderation.StatusUnavailable:
		return utils.NewAppError(utils.ErrValidationUnavailable, messages.AIValidationError, nil)
	}
	return nil
}
