package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const setupTimeout = 5 * time.Second

type Client interface {
	Publish(subject string, data interface{}) error
	Subscribe(subject string, handler func(subject string, data []byte)) error
	Close()
}

// NATSClient publishes JSON events. Subscriptions to subjects kept by the
// event stream replay it from the first retained message, so a replica that
// starts late still sees earlier catalog events. Without JetStream they only
// receive live messages.
type NATSClient struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	replay bool
	logger *slog.Logger

	mu    sync.Mutex
	stops []func()
}

func NewNATSClient(ctx context.Context, url string, logger *slog.Logger) (*NATSClient, error) {
	nc, err := nats.Connect(url, connectOptions(logger)...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	c := &NATSClient{conn: nc, js: js, logger: logger}
	if err := EnsureStream(ctx, js); err != nil {
		logger.Warn("event stream unavailable, subscriptions are live only", "stream", StreamName, "error", err)
	} else {
		c.replay = true
	}
	return c, nil
}

func connectOptions(logger *slog.Logger) []nats.Option {
	return []nats.Option{
		nats.Name("spechunter"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}
}

func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *NATSClient) Subscribe(subject string, handler func(string, []byte)) error {
	if c.replay && inStream(subject) {
		return c.consume(subject, handler)
	}
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.track(func() { _ = sub.Unsubscribe() })
	return nil
}

// consume reads subject through an ordered consumer. Ordered consumers are
// ephemeral and need no acks.
func (c *NATSClient) consume(subject string, handler func(string, []byte)) error {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	cons, err := c.js.OrderedConsumer(ctx, StreamName, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subject},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return fmt.Errorf("consumer %s: %w", subject, err)
	}
	cc, err := cons.Consume(func(msg jetstream.Msg) {
		handler(msg.Subject(), msg.Data())
	})
	if err != nil {
		return fmt.Errorf("consume %s: %w", subject, err)
	}
	c.track(cc.Stop)
	return nil
}

func (c *NATSClient) track(stop func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stops = append(c.stops, stop)
}

func (c *NATSClient) Close() {
	c.mu.Lock()
	stops := c.stops
	c.stops = nil
	c.mu.Unlock()
	for _, stop := range stops {
		stop()
	}
	c.conn.Close()
}

// Noop drops every event. Used when no NATS URL is configured.
type Noop struct{}

func (Noop) Publish(string, interface{}) error            { return nil }
func (Noop) Subscribe(string, func(string, []byte)) error { return nil }
func (Noop) Close()                                       {}
