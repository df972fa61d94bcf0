package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/kafka"
)

// fakeRepo is an in-memory stand-in honoring the repository's documented
// watermark and band contracts.
type fakeRepo struct {
	mu      sync.Mutex
	items   map[uint]*domain.Medicinal
	scanned chan struct{}

	findErr error
	markErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   make(map[uint]*domain.Medicinal),
		scanned: make(chan struct{}, 16),
	}
}

func (f *fakeRepo) add(m domain.Medicinal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[m.ID] = &m
}

func (f *fakeRepo) get(id uint) domain.Medicinal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.items[id]
}

func (f *fakeRepo) Create(m *domain.Medicinal) error          { return errors.New("not implemented") }
func (f *fakeRepo) FindByID(id uint) (*domain.Medicinal, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRepo) FindAll(filter domain.ListFilter) ([]domain.Medicinal, int64, error) {
	return nil, 0, errors.New("not implemented")
}
func (f *fakeRepo) Update(m *domain.Medicinal) error { return errors.New("not implemented") }
func (f *fakeRepo) SoftDelete(id uint) error         { return errors.New("not implemented") }
func (f *fakeRepo) Recover(id uint) error            { return errors.New("not implemented") }

func (f *fakeRepo) lapsed(m *domain.Medicinal, now time.Time) bool {
	return m.LastNotifiedAt == nil || !m.LastNotifiedAt.After(now)
}

func (f *fakeRepo) FindExpired(now time.Time) ([]domain.Medicinal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case f.scanned <- struct{}{}:
	default:
	}
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []domain.Medicinal
	today := domain.DateOf(now)
	for _, m := range f.items {
		if m.IsDel || domain.DateOf(m.Validity).After(today) || !f.lapsed(m, now) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepo) FindExpiringSoon(now time.Time, days int) ([]domain.Medicinal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []domain.Medicinal
	from := domain.DateOf(now).AddDate(0, 0, 1)
	to := domain.DateOf(now).AddDate(0, 0, days)
	for _, m := range f.items {
		day := domain.DateOf(m.Validity)
		if m.IsDel || day.Before(from) || day.After(to) || !f.lapsed(m, now) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepo) MarkNotified(ids []uint, watermark time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	for _, id := range ids {
		if m, ok := f.items[id]; ok {
			w := watermark
			m.LastNotifiedAt = &w
		}
	}
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []kafka.ExpiryAlertEvent
}

func (f *fakeEvents) PublishExpiryAlert(ctx context.Context, event kafka.ExpiryAlertEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func testConfig() Config {
	return Config{
		Enabled:      true,
		Phones:       []string{"13800000000"},
		TemplateCode: "SMS_1",
		SignName:     "medstock",
	}
}

func TestDispatch_EnqueuesAndAdvancesWatermark(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	repo := newFakeRepo()
	repo.add(domain.Medicinal{
		ID:          1,
		Category:    "急救箱",
		Name:        "阿莫西林",
		BatchNumber: "B123",
		Validity:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local),
	})

	queue := NewQueue()
	events := &fakeEvents{}
	d := NewDispatcher(repo, queue, events, testConfig())
	d.now = func() time.Time { return now }

	candidates, err := repo.FindExpired(now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	n := d.Dispatch(context.Background(), candidates, BandExpired)
	assert.Equal(t, 1, n)
	require.Equal(t, 1, queue.Len())

	msg, ok := queue.next()
	require.True(t, ok)
	assert.Equal(t, []string{"13800000000"}, msg.Phones)
	assert.Equal(t, "SMS_1", msg.TemplateCode)
	assert.Equal(t, "已过期:阿莫西林(急救箱)", msg.Param.Name)
	assert.Equal(t, "B123/2026-08-30", msg.Param.Code)

	stored := repo.get(1)
	require.NotNil(t, stored.LastNotifiedAt)
	assert.True(t, stored.LastNotifiedAt.Equal(now.Add(RenotifyCooldown)))

	require.Len(t, events.events, 1)
	assert.Equal(t, uint(1), events.events[0].MedicinalID)
	assert.Equal(t, string(BandExpired), events.events[0].Band)
}

func TestDispatch_SoonBandLabel(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	repo := newFakeRepo()
	queue := NewQueue()
	d := NewDispatcher(repo, queue, nil, testConfig())
	d.now = func() time.Time { return now }

	d.Dispatch(context.Background(), []domain.Medicinal{{
		ID:          2,
		Category:    "Empty",
		Name:        "碘伏",
		BatchNumber: "Empty",
		Validity:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local),
	}}, BandSoon)

	msg, ok := queue.next()
	require.True(t, ok)
	assert.Equal(t, "即将过期:碘伏(Empty)", msg.Param.Name)
}

func TestDispatch_ClosedQueueLeavesWatermarkUntouched(t *testing.T) {
	repo := newFakeRepo()
	repo.add(domain.Medicinal{
		ID:       3,
		Name:     "纱布",
		Validity: time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local),
	})

	queue := NewQueue()
	queue.Close()

	d := NewDispatcher(repo, queue, nil, testConfig())

	n := d.Dispatch(context.Background(), []domain.Medicinal{repo.get(3)}, BandExpired)
	assert.Zero(t, n)
	assert.Nil(t, repo.get(3).LastNotifiedAt)
}

func TestDispatch_MarkFailureStillDelivers(t *testing.T) {
	repo := newFakeRepo()
	repo.markErr = errors.New("db down")
	repo.add(domain.Medicinal{
		ID:       4,
		Name:     "布洛芬",
		Validity: time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local),
	})

	queue := NewQueue()
	d := NewDispatcher(repo, queue, nil, testConfig())

	n := d.Dispatch(context.Background(), []domain.Medicinal{repo.get(4)}, BandExpired)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, queue.Len())
	// Watermark stayed stale; the record stays eligible next cycle.
	assert.Nil(t, repo.get(4).LastNotifiedAt)
}

func TestDispatch_NoCandidatesIsNoop(t *testing.T) {
	repo := newFakeRepo()
	queue := NewQueue()
	d := NewDispatcher(repo, queue, nil, testConfig())

	assert.Zero(t, d.Dispatch(context.Background(), nil, BandExpired))
	assert.Zero(t, queue.Len())
}
