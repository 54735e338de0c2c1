package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
)

const subjectPrefix = "events."

type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher sends ledger events to a JetStream stream.
type Publisher struct {
	nc *nats.Conn
	js streamPublisher
}

// New connects to NATS when events.nats_url is set. A nil *Publisher means publishing is disabled.
func New(lc fx.Lifecycle, cfg *cfgpkg.Config, log *zap.SugaredLogger) (*Publisher, error) {
	if cfg.Events.NatsURL == "" {
		log.Infow("event_publisher_disabled")
		return nil, nil
	}

	nc, err := nats.Connect(cfg.Events.NatsURL,
		nats.Name(cfgpkg.ServiceName),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      cfg.Events.Stream,
		Subjects:  []string{subjectPrefix + ">"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
	})
	if err != nil {
		// the stream may be owned by another service
		log.Warnw("event_stream_ensure_failed", "stream", cfg.Events.Stream, "error", err)
	}

	p := &Publisher{nc: nc, js: js}
	lc.Append(fx.StopHook(p.Close))
	log.Infow("event_publisher_connected", "url", cfg.Events.NatsURL, "stream", cfg.Events.Stream)
	return p, nil
}

// Publish sends payload as JSON to events.<eventType>. msgID enables JetStream de-duplication.
func (p *Publisher) Publish(ctx context.Context, eventType, msgID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	subject := subjectPrefix + eventType
	var opts []jetstream.PublishOpt
	if msgID != "" {
		opts = append(opts, jetstream.WithMsgID(msgID))
	}
	if _, err := p.js.Publish(ctx, subject, data, opts...); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
