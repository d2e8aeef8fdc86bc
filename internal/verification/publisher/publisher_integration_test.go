//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"vkyc/internal/platform/config"
	"vkyc/internal/platform/kafka"
	"vkyc/internal/verification/models"
	"vkyc/pkg/testutil/containers"
)

func TestKafkaPublishRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rp := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const topic = "vkyc.submissions.test"
	client, err := kafka.New(config.KafkaConfig{Brokers: rp.Brokers, ClientID: "vkyc-test"})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, kafka.EnsureTopic(ctx, client, topic, 1, 1, slog.New(slog.NewTextHandler(io.Discard, nil))))

	sub := models.Submission{SessionID: "KYC-1", CatalogVersion: "2024-01", SubmittedAt: time.Now().UTC()}
	require.NoError(t, NewKafka(client, topic).Publish(ctx, sub))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.NotEmpty(t, records)

	var got models.Submission
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, sub.SessionID, got.SessionID)
	require.Equal(t, "KYC-1", string(records[0].Key))
}
