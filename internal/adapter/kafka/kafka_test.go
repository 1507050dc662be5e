package kafka

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/volcano-analytics/internal/config"
	"github.com/couchcryptid/volcano-analytics/internal/domain"
	"github.com/couchcryptid/volcano-analytics/internal/report"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMessageWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (m *mockMessageWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockMessageWriter) Close() error {
	m.closed = true
	return nil
}

func testReport() report.Report {
	return report.Report{
		ID:             "rpt-1",
		GeneratedAt:    time.Date(2024, 4, 27, 6, 0, 0, 0, time.UTC),
		Count:          2,
		MostCommonType: "Stratovolcano",
		MostDeadly:     &domain.Eruption{Name: "Tambora", Deaths: "60000"},
	}
}

func TestSerializeToMessage(t *testing.T) {
	r := testReport()

	msg, err := serializeToMessage(r)
	require.NoError(t, err)

	assert.Equal(t, []byte("rpt-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"most_common_type":"Stratovolcano"`)
	assert.Contains(t, string(msg.Value), `"name":"Tambora"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "report_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("rpt-1"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-04-27T06:00:00Z"), msg.Headers[1].Value)
}

func TestWriter_Publish(t *testing.T) {
	mw := &mockMessageWriter{}
	w := &Writer{writer: mw, logger: slog.Default()}

	require.NoError(t, w.Publish(context.Background(), testReport()))
	require.Len(t, mw.msgs, 1)
	assert.Equal(t, []byte("rpt-1"), mw.msgs[0].Key)

	require.NoError(t, w.Close())
	assert.True(t, mw.closed)
}

func TestWriter_PublishError(t *testing.T) {
	mw := &mockMessageWriter{err: errors.New("broker down")}
	w := &Writer{writer: mw, logger: slog.Default()}

	err := w.Publish(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish report rpt-1")
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaReportTopic: "volcano-reports"}
	w := NewWriter(cfg, slog.Default())

	kw, ok := w.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "volcano-reports", kw.Topic)
	assert.Equal(t, kafkago.RequireAll, kw.RequiredAcks)
	require.NoError(t, w.Close())
}
