package main

import (
	"log/slog"

	"groledger/core/events"
)

// logEmitter writes every committed event to the service log.
type logEmitter struct {
	logger *slog.Logger
}

func newLogEmitter(logger *slog.Logger) *logEmitter {
	return &logEmitter{logger: logger.With(slog.String("component", "events"))}
}

func (l *logEmitter) Emit(evt events.Event) {
	if evt == nil {
		return
	}
	attrs := []any{slog.String("type", evt.EventType())}
	if body := events.Body(evt); body != nil {
		attrs = append(attrs, slog.String("event", body.String()))
	}
	l.logger.Info("ledger event", attrs...)
}
