package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/medstock/medstock/internal/sms"
	"github.com/medstock/medstock/pkg/logger"
)

// ErrQueueClosed is returned by Enqueue after the queue has shut down.
var ErrQueueClosed = errors.New("send queue closed")

// Queue is the unbounded, in-order hand-off between the scan loop and the
// SMS worker. Enqueue never blocks; the worker drains one message at a time
// in receipt order.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []sms.Message
	closed bool
}

// NewQueue creates a new send queue
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends a message for asynchronous delivery
func (q *Queue) Enqueue(msg sms.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, msg)
	q.cond.Signal()
	return nil
}

// Len reports the number of undelivered messages
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops the queue; the worker exits once drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// next blocks until a message is available or the queue is closed and empty.
func (q *Queue) next() (sms.Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return sms.Message{}, false
	}
	msg := q.items[0]
	q.items = q.items[1:]
	return msg, true
}

// StartWorker launches the delivery goroutine. Send failures are logged and
// dropped; the periodic re-scan is the recovery mechanism.
func (q *Queue) StartWorker(ctx context.Context, client sms.Client) {
	go func() {
		<-ctx.Done()
		q.Close()
	}()

	go func() {
		for {
			msg, ok := q.next()
			if !ok {
				logger.Logger.Info().Msg("SMS queue worker stopped")
				return
			}

			if err := client.Send(ctx, msg); err != nil {
				smsSendFailures.Inc()
				logger.Logger.Error().
					Err(err).
					Str("name", msg.Param.Name).
					Str("code", msg.Param.Code).
					Msg("SMS delivery failed")
				continue
			}

			smsSent.Inc()
			logger.Logger.Info().
				Str("name", msg.Param.Name).
				Str("code", msg.Param.Code).
				Msg("SMS delivered")
		}
	}()
}
