package events

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The writer must not keep segmentio's default 1s batch timeout: Publish is
// called synchronously after each ledger commit, so the batch window is
// response latency.
func TestNewKafkaPublisher_WriterTuning(t *testing.T) {
	t.Parallel()

	p := NewKafkaPublisher("broker1:9092,broker2:9092")
	t.Cleanup(func() { _ = p.Close() })

	kp, ok := p.(*kafkaPublisher)
	require.True(t, ok)

	w := kp.writer
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.True(t, w.AllowAutoTopicCreation)
	assert.NotNil(t, w.Addr)
}
