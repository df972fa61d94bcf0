package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock/internal/sms"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	for _, code := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(sms.Message{Param: sms.Param{Code: code}}))
	}
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"a", "b", "c"} {
		msg, ok := q.next()
		require.True(t, ok)
		assert.Equal(t, want, msg.Param.Code)
	}
	assert.Zero(t, q.Len())
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := NewQueue()
	q.Close()

	err := q.Enqueue(sms.Message{})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueue_NextDrainsBeforeStopping(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Enqueue(sms.Message{Param: sms.Param{Code: "x"}}))
	q.Close()

	msg, ok := q.next()
	require.True(t, ok)
	assert.Equal(t, "x", msg.Param.Code)

	_, ok = q.next()
	assert.False(t, ok)
}

type recordingClient struct {
	mu   sync.Mutex
	sent []sms.Message
	errs int
	fail bool
	got  chan struct{}
}

func newRecordingClient() *recordingClient {
	return &recordingClient{got: make(chan struct{}, 16)}
}

func (c *recordingClient) Send(ctx context.Context, msg sms.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.got <- struct{}{} }()
	if c.fail {
		c.errs++
		return errors.New("gateway down")
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *recordingClient) delivered() []sms.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sms.Message(nil), c.sent...)
}

func TestQueue_WorkerDeliversInOrder(t *testing.T) {
	q := NewQueue()
	client := newRecordingClient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.StartWorker(ctx, client)

	for _, code := range []string{"1", "2", "3"} {
		require.NoError(t, q.Enqueue(sms.Message{Param: sms.Param{Code: code}}))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-client.got:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not drain the queue")
		}
	}

	sent := client.delivered()
	require.Len(t, sent, 3)
	assert.Equal(t, "1", sent[0].Param.Code)
	assert.Equal(t, "2", sent[1].Param.Code)
	assert.Equal(t, "3", sent[2].Param.Code)
}

func TestQueue_WorkerDropsFailedSends(t *testing.T) {
	q := NewQueue()
	client := newRecordingClient()
	client.fail = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.StartWorker(ctx, client)

	require.NoError(t, q.Enqueue(sms.Message{Param: sms.Param{Code: "x"}}))

	select {
	case <-client.got:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never attempted the send")
	}

	assert.Empty(t, client.delivered())
}
