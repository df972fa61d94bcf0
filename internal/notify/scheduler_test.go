package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

func newTestScheduler(repo *fakeRepo, queue *Queue, cfg Config, now time.Time, ticks chan time.Time) *Scheduler {
	d := NewDispatcher(repo, queue, nil, cfg)
	d.now = func() time.Time { return now }

	s := NewScheduler(cfg, NewScanner(repo), d)
	s.now = func() time.Time { return now }
	s.tick = func(time.Duration) <-chan time.Time { return ticks }
	return s
}

func TestScheduler_DisabledReturnsImmediately(t *testing.T) {
	repo := newFakeRepo()
	s := newTestScheduler(repo, NewQueue(), Config{Enabled: false}, time.Now(), nil)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("disabled scheduler did not return")
	}
	assert.Empty(t, repo.scanned)
}

func TestScheduler_FirstCycleRunsBeforeAnyTick(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	repo := newFakeRepo()
	repo.add(domain.Medicinal{
		ID:       1,
		Name:     "阿莫西林",
		Validity: time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local),
	})

	queue := NewQueue()
	ticks := make(chan time.Time)
	s := newTestScheduler(repo, queue, testConfig(), now, ticks)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-repo.scanned:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle never scanned")
	}

	cancel()
	<-done

	assert.Equal(t, 1, queue.Len())
}

func TestScheduler_NotifiedRecordSuppressedOnRescan(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	repo := newFakeRepo()
	repo.add(domain.Medicinal{
		ID:       1,
		Name:     "阿莫西林",
		Validity: time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local),
	})

	queue := NewQueue()
	ticks := make(chan time.Time)
	s := newTestScheduler(repo, queue, testConfig(), now, ticks)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// First cycle notifies and advances the watermark past now.
	<-repo.scanned
	ticks <- now

	// Second cycle sees the suppressed record and enqueues nothing new.
	select {
	case <-repo.scanned:
	case <-time.After(2 * time.Second):
		t.Fatal("second cycle never scanned")
	}

	cancel()
	<-done

	assert.Equal(t, 1, queue.Len())
	stored := repo.get(1)
	require.NotNil(t, stored.LastNotifiedAt)
	assert.True(t, stored.LastNotifiedAt.Equal(now.Add(RenotifyCooldown)))
}

func TestScheduler_FutureWatermarkExcludedFromBothBands(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	suppressed := now.Add(time.Hour)

	repo := newFakeRepo()
	repo.add(domain.Medicinal{
		ID:             1,
		Name:           "阿莫西林",
		Validity:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local),
		LastNotifiedAt: &suppressed,
	})
	repo.add(domain.Medicinal{
		ID:             2,
		Name:           "碘伏",
		Validity:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local),
		LastNotifiedAt: &suppressed,
	})

	expired, soon, err := NewScanner(repo).Scan(context.Background(), now, 30)
	require.NoError(t, err)
	assert.Empty(t, expired)
	assert.Empty(t, soon)
}

func TestScheduler_FailingScanDoesNotStopLoop(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	repo := newFakeRepo()
	repo.findErr = errors.New("db down")

	queue := NewQueue()
	ticks := make(chan time.Time)
	s := newTestScheduler(repo, queue, testConfig(), now, ticks)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	<-repo.scanned
	ticks <- now
	select {
	case <-repo.scanned:
	case <-time.After(2 * time.Second):
		t.Fatal("loop stopped after failing cycle")
	}

	cancel()
	<-done
	assert.Zero(t, queue.Len())
}
