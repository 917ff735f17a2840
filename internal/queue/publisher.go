package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/metrics"
)

const (
	defaultBuffer      = 256
	defaultDialTimeout = 3 * time.Second
	sendTimeout        = 5 * time.Second
)

// ErrBufferFull is returned by Publish when the outgoing buffer is full
// and the event was dropped.
var ErrBufferFull = errors.New("booking event buffer full")

// Publisher sends booking events to RabbitMQ.  Publish only enqueues;
// Run drains the buffer and talks to the broker, so request handlers
// never wait on the network.  The connection is opened lazily and
// reopened after a failure, so a broker outage only costs the events
// sent while it lasts.
type Publisher struct {
	url         string
	dialTimeout time.Duration
	events      chan BookingEvent

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string) *Publisher {
	return newPublisher(url, defaultBuffer, defaultDialTimeout)
}

func newPublisher(url string, buffer int, dialTimeout time.Duration) *Publisher {
	return &Publisher{url: url, dialTimeout: dialTimeout, events: make(chan BookingEvent, buffer)}
}

// Publish hands ev to the background sender without blocking.  When
// the buffer is full the event is dropped and ErrBufferFull returned.
func (p *Publisher) Publish(ctx context.Context, ev BookingEvent) error {
	select {
	case p.events <- ev:
		return nil
	default:
		metrics.BookingEvents.WithLabelValues(ev.Type, "dropped").Inc()
		logging.FromContext(ctx).WithField("event", ev.Type).Warn("rabbitmq: buffer full, event dropped")
		return ErrBufferFull
	}
}

// Run sends buffered events until ctx is done.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-p.events:
			p.send(ctx, ev)
		}
	}
}

func (p *Publisher) send(ctx context.Context, ev BookingEvent) {
	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	err := p.publish(sctx, ev)
	metrics.BookingEvents.WithLabelValues(ev.Type, metrics.Outcome(err)).Inc()
	if err != nil {
		logging.FromContext(ctx).WithError(err).
			WithField("event", ev.Type).WithField("correlation_id", ev.CorrelationID).
			Warn("rabbitmq: publish failed")
	}
}

func (p *Publisher) publish(ctx context.Context, ev BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     ev.EventID,
		CorrelationId: ev.CorrelationID,
		Type:          ev.Type,
		Timestamp:     time.Now().UTC(),
		Body:          body,
	}
	if err := ch.PublishWithContext(ctx, "", BookingEventsQueue, false, false, pub); err != nil {
		p.resetLocked()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *Publisher) channelLocked() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.resetLocked()

	// The dial deadline also bounds the AMQP handshake.
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingEventsQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}
