package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
)

type fakeStream struct {
	subject string
	data    []byte
	opts    int
	err     error
}

func (f *fakeStream) Publish(_ context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.subject, f.data, f.opts = subject, payload, len(opts)
	if f.err != nil {
		return nil, f.err
	}
	return &jetstream.PubAck{Stream: "EVENTS", Sequence: 1}, nil
}

func TestNew_Disabled(t *testing.T) {
	p, err := New(fxtest.NewLifecycle(t), &cfgpkg.Config{}, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Nil(t, p)
	assert.NotPanics(t, p.Close)
}

func TestPublish(t *testing.T) {
	fs := &fakeStream{}
	p := &Publisher{js: fs}

	require.NoError(t, p.Publish(context.Background(), "payment.completed", "TXN-1", map[string]any{"payment_id": 7}))
	assert.Equal(t, "events.payment.completed", fs.subject)
	assert.Equal(t, 1, fs.opts)

	var body map[string]any
	require.NoError(t, json.Unmarshal(fs.data, &body))
	assert.Equal(t, 7.0, body["payment_id"])
}

func TestPublish_Error(t *testing.T) {
	boom := errors.New("no responders")
	p := &Publisher{js: &fakeStream{err: boom}}
	err := p.Publish(context.Background(), "payment.refunded", "", struct{}{})
	require.ErrorIs(t, err, boom)
}
