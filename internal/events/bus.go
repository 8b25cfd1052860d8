// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package events provides an in-process Pub/Sub bus for audit events:
// feedback recorded and batches staged. The bus carries watermill messages
// over a gochannel transport; no external broker is involved.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/researchradar/researchradar/internal/logging"
)

// Topics published on the bus.
const (
	TopicFeedbackRecorded = "feedback.recorded"
	TopicBatchStaged      = "batch.staged"
)

// FeedbackRecorded is emitted for every appended feedback record.
type FeedbackRecorded struct {
	ProjectID  string    `json:"project_id"`
	ItemType   string    `json:"item_type"`
	ItemID     string    `json:"item_id"`
	Liked      bool      `json:"liked"`
	RecordedAt time.Time `json:"recorded_at"`
}

// BatchStaged is emitted after a staged batch replacement.
type BatchStaged struct {
	ProjectID string    `json:"project_id"`
	Size      int       `json:"size"`
	StagedAt  time.Time `json:"staged_at"`
}

// Bus wraps a gochannel Pub/Sub.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the in-process bus. bufferSize bounds the per-subscriber
// channel; publishers never block on slow subscribers beyond it.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(bufferSize),
	}, newWatermillLogger())
	return &Bus{pubsub: pubsub}
}

// PublishFeedback emits a FeedbackRecorded event.
func (b *Bus) PublishFeedback(evt FeedbackRecorded) error {
	return b.publish(TopicFeedbackRecorded, evt)
}

// PublishBatchStaged emits a BatchStaged event.
func (b *Bus) PublishBatchStaged(evt BatchStaged) error {
	return b.publish(TopicBatchStaged, evt)
}

func (b *Bus) publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message channel for a topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts down the bus and its subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// watermillLogger adapts the global zerolog logger to watermill's
// LoggerAdapter interface.
type watermillLogger struct {
	fields watermill.LogFields
}

func newWatermillLogger() watermill.LoggerAdapter {
	return &watermillLogger{}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	logging.Error().Err(err).Fields(map[string]interface{}(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	logging.Info().Fields(map[string]interface{}(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	logging.Debug().Fields(map[string]interface{}(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	logging.Debug().Fields(map[string]interface{}(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{fields: l.fields.Add(fields)}
}
