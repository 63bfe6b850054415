//go:build unit

package commands_test

import (
	"context"
	"sync"

	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

func (p *recordingPublisher) Last() shared.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type recordingCache struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (c *recordingCache) InvalidateBooking(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
	return nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	booking  []string
	created  int
	refund   []string
	failures []string
}

func (m *recordingMetrics) BookingTransition(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.booking = append(m.booking, from+"->"+to)
}

func (m *recordingMetrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *recordingMetrics) RefundTransition(to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refund = append(m.refund, to)
}

func (m *recordingMetrics) OperationFailed(operation, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, operation+":"+kind)
}

type recorders struct {
	publisher *recordingPublisher
	cache     *recordingCache
	metrics   *recordingMetrics
}

func newRecorders() recorders {
	return recorders{
		publisher: &recordingPublisher{},
		cache:     &recordingCache{},
		metrics:   &recordingMetrics{},
	}
}

func (r recorders) effects() *commands.SideEffects {
	return commands.NewSideEffects(r.publisher, r.cache, r.metrics)
}
