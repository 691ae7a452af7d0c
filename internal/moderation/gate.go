// Package moderation gates writes behind a synchronous text-policy check.
// A rejected submission never reaches storage.
package moderation

import (
	"context"
	"errors"
	"log/slog"

	"bayou-blog/internal/ai"
)

type Status int

const (
	StatusOK Status = iota
	StatusRejected
	StatusQuotaExceeded
	StatusUnavailable
)

// Result is the tagged outcome of a gate check. FailedFields is set only for
// StatusRejected.
type Result struct {
	Status       Status
	FailedFields []string
}

// Classifier is the external text-classification capability.
type Classifier interface {
	Classify(ctx context.Context, fields map[string]string) (ai.Classification, error)
}

type Gate struct {
	enabled    bool
	classifier Classifier
	logger     *slog.Logger
}

func NewGate(enabled bool, classifier Classifier, logger *slog.Logger) *Gate {
	return &Gate{
		enabled:    enabled,
		classifier: classifier,
		logger:     logger,
	}
}

// Validate classifies the named fields. Quota exhaustion and transport
// failures are distinct outcomes so callers can message them differently;
// the underlying cause is logged here and never exposed.
func (g *Gate) Validate(ctx context.Context, fields map[string]string) Result {
	if !g.enabled || g.classifier == nil {
		return Result{Status: StatusOK}
	}

	classification, err := g.classifier.Classify(ctx, fields)
	if errors.Is(err, ai.ErrQuotaExceeded) {
		g.logger.Warn("text classification quota exceeded")
		return Result{Status: StatusQuotaExceeded}
	}
	if err != nil {
		g.logger.Error("text classification unavailable", "error", err)
		return Result{Status: StatusUnavailable}
	}

	if !classification.Result {
		return Result{Status: StatusRejected, FailedFields: classification.FailedFields}
	}
	return Result{Status: StatusOK}
}
