// Package queue publishes submission notifications to NATS JetStream.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// JetStream is the subset of jetstream.JetStream used by Publisher.
type JetStream interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Observer is notified of every publish attempt.
type Observer interface {
	ObservePublish(err error)
}

type nopObserver struct{}

func (nopObserver) ObservePublish(error) {}

// Publisher sends one message per persisted submission and waits for the
// stream acknowledgement.
type Publisher struct {
	js      JetStream
	subject string
	obs     Observer
	log     *slog.Logger

	conn *nats.Conn
}

// New wraps an existing JetStream context. obs may be nil.
func New(js JetStream, subject string, obs Observer, logger *slog.Logger) *Publisher {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Publisher{
		js:      js,
		subject: subject,
		obs:     obs,
		log:     logger.With("adapter", "queue"),
	}
}

// Connect dials the NATS servers in url, makes sure the configured stream
// captures the subject and returns a ready Publisher.
func Connect(ctx context.Context, url string, cfg config.QueueConfig, obs Observer, logger *slog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("queue disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("queue reconnected", slog.String("server", c.ConnectedServerId()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("queue: connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("queue: jetstream: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{cfg.Subject},
		Storage:  jetstream.FileStorage,
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("queue: ensure stream %s: %w", cfg.Stream, err)
	}

	p := New(js, cfg.Subject, obs, logger)
	p.conn = nc
	return p, nil
}

// Publish encodes n as JSON and publishes it. Every call stores a new
// message; no message id is set, so the stream never drops one as a duplicate.
func (p *Publisher) Publish(ctx context.Context, n domain.SubmissionNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("queue: encode notification: %w", err)
	}

	ack, err := p.js.Publish(ctx, p.subject, payload)
	p.obs.ObservePublish(err)
	if err != nil {
		return fmt.Errorf("queue: publish %s: %w", p.subject, err)
	}

	p.log.DebugContext(ctx, "notification published",
		slog.Int64("submission_id", n.SubmissionID),
		slog.String("stream", ack.Stream),
		slog.Uint64("seq", ack.Sequence),
	)
	return nil
}

// Close drains the connection. It is a no-op for publishers built with New.
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
