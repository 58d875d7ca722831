package mq

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Local is an in-process fan-out backend for single-instance deployments
// and tests.
type Local struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan Message
	nextID int
	closed bool
}

func NewLocal() *Local {
	return &Local{subs: map[string]map[int]chan Message{}}
}

// Publish hands the message to every current subscriber of channel. A
// subscriber whose buffer is full misses the message.
func (l *Local) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(channel) == "" {
		return "", errors.New("local channel is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "", errors.New("local mq is closed")
	}

	msg := Message{ID: newMessageID(), Data: append([]byte(nil), data...), Attributes: attrs}
	for _, ch := range l.subs[channel] {
		select {
		case ch <- msg:
		default:
		}
	}
	return msg.ID, nil
}

func (l *Local) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if strings.TrimSpace(channel) == "" {
		return errors.New("local channel is required")
	}

	ch := make(chan Message, 64)
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return errors.New("local mq is closed")
	}
	id := l.nextID
	l.nextID++
	if l.subs[channel] == nil {
		l.subs[channel] = map[int]chan Message{}
	}
	l.subs[channel][id] = ch
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.subs[channel], id)
		l.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			// No redelivery in-process: a failed handler just drops the message.
			_ = handler(ctx, msg)
		}
	}
}

// Close ends every active subscription.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	for _, subs := range l.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
	}
	return nil
}

// Subscribers reports how many subscriptions channel currently has.
func (l *Local) Subscribers(channel string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs[channel])
}
