package main

import (
	"github.com/rs/zerolog"

	"logscout/internal/domain"
	"logscout/internal/eventbus"
)

// subscribeEventLog logs every coordinator event and returns a function
// removing the subscriptions.
func subscribeEventLog(bus eventbus.EventBus, logger zerolog.Logger) func() {
	logger = logger.With().Str("component", "events").Logger()

	unsubs := make([]func(), 0, len(eventbus.AllEventTypes))
	for _, t := range eventbus.AllEventTypes {
		unsubs = append(unsubs, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logEvent(logger, e)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func logEvent(logger zerolog.Logger, e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case domain.QuerySubmittedEvent:
		logger.Info().Str("event", string(ev.Type())).Str("identity", ev.Identity.String()).Bool("empty", ev.Empty).Msg("query submitted")
	case domain.FetchIssuedEvent:
		logger.Debug().Str("event", string(ev.Type())).Uint64("seq", ev.Request.Seq).Int("page", ev.Request.Page).Str("trigger", ev.Trigger).Msg("fetch issued")
	case domain.PageFoldedEvent:
		logger.Debug().Str("event", string(ev.Type())).Uint64("seq", ev.Request.Seq).Int("count", ev.Count).Int("total", ev.Total).Msg("page folded")
	case domain.QueryExhaustedEvent:
		logger.Info().Str("event", string(ev.Type())).Str("identity", ev.Identity.String()).Int("total", ev.Total).Msg("query exhausted")
	case domain.FetchFailedEvent:
		logger.Error().Str("event", string(ev.Type())).Err(ev.Err).Uint64("seq", ev.Request.Seq).Int("page", ev.Request.Page).Msg("fetch failed")
	case domain.StaleResponseDiscardedEvent:
		logger.Warn().Str("event", string(ev.Type())).Uint64("seq", ev.Request.Seq).Str("identity", ev.Request.Identity.String()).Msg("stale response discarded")
	case domain.ResultsClearedEvent:
		logger.Debug().Str("event", string(ev.Type())).Str("reason", ev.Reason).Msg("results cleared")
	default:
		logger.Debug().Str("event", string(e.Type())).Msg("event")
	}
}
