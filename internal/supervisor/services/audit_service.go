// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package services

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/researchradar/researchradar/internal/events"
)

// Subscriber is the bus surface the audit service consumes. Satisfied by
// *events.Bus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// AuditService drains the event bus topics and writes each event to the
// structured log, giving operators a durable trail of feedback and batch
// activity. Messages are acked unconditionally; the log line is the
// side effect.
type AuditService struct {
	bus    Subscriber
	logger zerolog.Logger
	name   string
}

// NewAuditService creates the audit subscriber.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAuditService(bus Subscriber, logger zerolog.Logger) *AuditService {
	return &AuditService{
		bus:    bus,
		logger: logger.With().Str("service", "audit").Logger(),
		name:   "event-audit",
	}
}

// Serve implements suture.Service. Subscriptions are bound to the
// service context, so cancellation closes both channels and ends the
// loop.
func (a *AuditService) Serve(ctx context.Context) error {
	feedbackCh, err := a.bus.Subscribe(ctx, events.TopicFeedbackRecorded)
	if err != nil {
		return err
	}
	batchCh, err := a.bus.Subscribe(ctx, events.TopicBatchStaged)
	if err != nil {
		return err
	}

	a.logger.Info().Msg("event audit service running")

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("event audit service shutting down")
			return ctx.Err()

		case msg, ok := <-feedbackCh:
			if !ok {
				return ctx.Err()
			}
			a.logEvent(events.TopicFeedbackRecorded, msg)

		case msg, ok := <-batchCh:
			if !ok {
				return ctx.Err()
			}
			a.logEvent(events.TopicBatchStaged, msg)
		}
	}
}

func (a *AuditService) logEvent(topic string, msg *message.Message) {
	a.logger.Info().
		Str("topic", topic).
		Str("message_id", msg.UUID).
		RawJSON("event", msg.Payload).
		Msg("event recorded")
	msg.Ack()
}

// String identifies the service in suture logs.
func (a *AuditService) String() string {
	return a.name
}
