// Package slog provides logging decorators for sectag services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/evaldoc/sectag"
)

// Ensure LoggingJudge implements sectag.Judge.
var _ sectag.Judge = (*LoggingJudge)(nil)

// LoggingJudge wraps a Judge with structured logging of review calls.
type LoggingJudge struct {
	next   sectag.Judge
	logger *slog.Logger
}

// NewLoggingJudge creates a new LoggingJudge.
func NewLoggingJudge(next sectag.Judge, logger *slog.Logger) *LoggingJudge {
	return &LoggingJudge{next: next, logger: logger}
}

// Review delegates to the wrapped judge, logging duration and the number of
// labels the judge changed.
func (j *LoggingJudge) Review(ctx context.Context, entries []sectag.Entry, labels sectag.LabelMap) (sectag.LabelMap, error) {
	begin := time.Now()

	reviewed, err := j.next.Review(ctx, entries, labels)
	if err != nil {
		j.logger.Error("judge review failed",
			"entries", len(entries),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}

	changed := 0
	for index := range reviewed {
		if reviewed.Get(index) != labels.Get(index) {
			changed++
		}
	}

	j.logger.Info("judge review",
		"entries", len(entries),
		"changed", changed,
		"duration", time.Since(begin),
	)
	return reviewed, nil
}
