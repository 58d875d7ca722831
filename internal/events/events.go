// Package events announces content mutations so that every running
// instance can drop derived state such as rendered pages.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"acc-portal/internal/mq"
)

// DefaultChannel carries Change messages.
const DefaultChannel = "content.changed"

type Action string

const (
	Created   Action = "created"
	Updated   Action = "updated"
	Deleted   Action = "deleted"
	Reordered Action = "reordered"
)

type Change struct {
	Entity string    `json:"entity"`
	Action Action    `json:"action"`
	ID     string    `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier receives changes after a successful mutation.
type Notifier interface {
	Notify(ctx context.Context, c Change)
}

// Discard drops every change.
type Discard struct{}

func (Discard) Notify(context.Context, Change) {}

// Publisher sends changes over the message queue.
type Publisher struct {
	mq      *mq.MQ
	channel string
}

func NewPublisher(m *mq.MQ, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{mq: m, channel: channel}
}

// Notify publishes c. Failures are logged; the mutation that caused the
// change has already happened.
func (p *Publisher) Notify(ctx context.Context, c Change) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	data, err := json.Marshal(c)
	if err != nil {
		log.Printf("events: encode change: %v", err)
		return
	}
	attrs := map[string]string{"entity": c.Entity, "action": string(c.Action)}

	// Detach from request cancellation; the response may already be written.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := p.mq.Publish(pubCtx, p.channel, data, attrs); err != nil {
		log.Printf("⚠️ events: publish %s %s %s: %v", c.Entity, c.Action, c.ID, err)
	}
}

// Subscribe calls fn for every change published on channel until ctx is
// done. Undecodable messages are logged and skipped.
func Subscribe(ctx context.Context, m *mq.MQ, channel string, fn func(Change)) error {
	if channel == "" {
		channel = DefaultChannel
	}
	return m.Subscribe(ctx, channel, func(ctx context.Context, msg mq.Message) error {
		var c Change
		if err := json.Unmarshal(msg.Data, &c); err != nil {
			log.Printf("events: skip undecodable message %s: %v", msg.ID, err)
			return nil
		}
		fn(c)
		return nil
	})
}
