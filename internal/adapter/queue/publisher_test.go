package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	require.NoError(t, err)

	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server did not start")
	}
	t.Cleanup(ns.Shutdown)

	return ns
}

type countingObserver struct {
	ok, failed int
}

func (o *countingObserver) ObservePublish(err error) {
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}

func testQueueConfig() config.QueueConfig {
	return config.QueueConfig{
		Stream:     "FORM_SUBMISSIONS",
		Subject:    "form-submission-job",
		ClientName: "queue-test",
	}
}

func TestPublisher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("embedded nats server")
	}

	ns := runJetStreamServer(t)
	ctx := context.Background()
	obs := &countingObserver{}

	pub, err := Connect(ctx, ns.ClientURL(), testQueueConfig(), obs, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	sent := domain.SubmissionNotification{
		SubmissionID: 42,
		Fields:       map[string]string{"name": "Ada"},
		FileName:     "me.png",
		ImageKey:     "0b6f.png",
		ImageURL:     "https://cdn.example.com/0b6f.png",
		Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.Publish(ctx, sent))
	assert.Equal(t, 1, obs.ok)

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, "FORM_SUBMISSIONS")
	require.NoError(t, err)
	msg, err := stream.GetMsg(ctx, 1)
	require.NoError(t, err)

	var got domain.SubmissionNotification
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, sent, got)
	assert.Equal(t, "form-submission-job", msg.Subject)
}

func TestPublisher_Integration_RepeatedPublishStoredEachTime(t *testing.T) {
	if testing.Short() {
		t.Skip("embedded nats server")
	}

	ns := runJetStreamServer(t)
	ctx := context.Background()

	pub, err := Connect(ctx, ns.ClientURL(), testQueueConfig(), nil, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	n := domain.SubmissionNotification{SubmissionID: 7, Timestamp: time.Now().UTC()}
	require.NoError(t, pub.Publish(ctx, n))
	require.NoError(t, pub.Publish(ctx, n))
	require.NoError(t, pub.Publish(ctx, domain.SubmissionNotification{SubmissionID: 8}))

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, "FORM_SUBMISSIONS")
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), info.State.Msgs)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), "nats://127.0.0.1:1", testQueueConfig(), nil, slog.Default())
	assert.Error(t, err)
}

type fakeJetStream struct {
	err      error
	subjects []string
	opts     int
}

func (f *fakeJetStream) Publish(_ context.Context, subject string, _ []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.subjects = append(f.subjects, subject)
	f.opts += len(opts)
	if f.err != nil {
		return nil, f.err
	}
	return &jetstream.PubAck{Stream: "S", Sequence: uint64(len(f.subjects))}, nil
}

func TestPublisher_Publish_Error(t *testing.T) {
	boom := errors.New("no responders available")
	js := &fakeJetStream{err: boom}
	obs := &countingObserver{}
	pub := New(js, "form-submission-job", obs, slog.Default())

	err := pub.Publish(context.Background(), domain.SubmissionNotification{SubmissionID: 1})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, obs.failed)
	assert.Equal(t, []string{"form-submission-job"}, js.subjects)
}

func TestPublisher_Publish_NoDeduplicationID(t *testing.T) {
	js := &fakeJetStream{}
	pub := New(js, "form-submission-job", nil, slog.Default())

	n := domain.SubmissionNotification{SubmissionID: 5}
	require.NoError(t, pub.Publish(context.Background(), n))
	require.NoError(t, pub.Publish(context.Background(), n))

	assert.Len(t, js.subjects, 2)
	assert.Zero(t, js.opts, "publish options such as a message id must not be set")
}

func TestPublisher_Close_WithoutConnection(t *testing.T) {
	pub := New(&fakeJetStream{}, "s", nil, slog.Default())
	assert.NoError(t, pub.Close())
}
