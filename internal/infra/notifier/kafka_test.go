package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaNotifier_Notify(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaNotifier{writer: w, topic: "bookmark-events"}

	ev := testEvent(entity.EventArticleDeleted)
	require.NoError(t, k.Notify(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, ev.Article.URL, string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "article.deleted", string(msg.Headers[0].Value))

	var decoded EventMessage
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "ev-1", decoded.ID)
	assert.Equal(t, "article.deleted", decoded.Type)
	assert.Equal(t, "Test Source", decoded.Article.SourceName)
	assert.Equal(t, "1", decoded.Article.ID)

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_NotifyError(t *testing.T) {
	k := &KafkaNotifier{writer: &fakeWriter{err: errors.New("broker down")}, topic: "t"}

	err := k.Notify(context.Background(), testEvent(entity.EventArticleSaved))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaNotifier_NilArticle(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaNotifier{writer: w, topic: "t"}
	ev := testEvent(entity.EventArticleSaved)
	ev.Article = nil

	require.Error(t, k.Notify(context.Background(), ev))
	assert.Empty(t, w.msgs)
}
