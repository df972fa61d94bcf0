package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/kafka"
)

// memRepo keeps created records in memory and flags duplicates on the
// (name, category, batch number) triple like the store does.
type memRepo struct {
	created   []domain.Medicinal
	createErr error
	nextID    uint
}

func (r *memRepo) Create(m *domain.Medicinal) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.created {
		if existing.Name == m.Name && existing.Category == m.Category && existing.BatchNumber == m.BatchNumber {
			return domain.ErrDuplicate
		}
	}
	r.nextID++
	m.ID = r.nextID
	r.created = append(r.created, *m)
	return nil
}

func (r *memRepo) FindByID(id uint) (*domain.Medicinal, error) {
	for i := range r.created {
		if r.created[i].ID == id {
			m := r.created[i]
			return &m, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memRepo) FindAll(filter domain.ListFilter) ([]domain.Medicinal, int64, error) {
	return r.created, int64(len(r.created)), nil
}

func (r *memRepo) Update(m *domain.Medicinal) error {
	for i := range r.created {
		if r.created[i].ID == m.ID {
			r.created[i] = *m
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memRepo) SoftDelete(id uint) error { return nil }
func (r *memRepo) Recover(id uint) error    { return nil }

func (r *memRepo) FindExpired(now time.Time) ([]domain.Medicinal, error) { return nil, nil }
func (r *memRepo) FindExpiringSoon(now time.Time, days int) ([]domain.Medicinal, error) {
	return nil, nil
}
func (r *memRepo) MarkNotified(ids []uint, watermark time.Time) error { return nil }

func TestCreateMedicinal_FillsSentinelsAndTruncatesValidity(t *testing.T) {
	repo := &memRepo{}
	h := NewCreateMedicinalHandler(repo)

	m, err := h.Handle(CreateMedicinalCommand{
		Name:     "阿莫西林",
		Validity: time.Date(2026, 1, 2, 15, 30, 45, 0, time.Local),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SentinelEmpty, m.Category)
	assert.Equal(t, domain.SentinelEmpty, m.BatchNumber)
	assert.Equal(t, domain.SentinelEmpty, m.Spec)
	assert.Equal(t, domain.SentinelEmpty, m.Count)
	assert.True(t, m.Validity.Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)))
}

func TestCreateMedicinal_Validation(t *testing.T) {
	repo := &memRepo{}
	h := NewCreateMedicinalHandler(repo)

	_, err := h.Handle(CreateMedicinalCommand{Validity: time.Now()})
	assert.Error(t, err)

	_, err = h.Handle(CreateMedicinalCommand{Name: "碘伏"})
	assert.Error(t, err)

	assert.Empty(t, repo.created)
}

func TestCreateMedicinal_DuplicatePassesThrough(t *testing.T) {
	repo := &memRepo{}
	h := NewCreateMedicinalHandler(repo)

	cmd := CreateMedicinalCommand{Name: "碘伏", Validity: time.Now()}
	_, err := h.Handle(cmd)
	require.NoError(t, err)

	_, err = h.Handle(cmd)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

type recordingPublisher struct {
	events []kafka.ImportCompletedEvent
}

func (p *recordingPublisher) PublishImportCompleted(ctx context.Context, event kafka.ImportCompletedEvent) error {
	p.events = append(p.events, event)
	return nil
}

const sampleUpload = "类目A,,,,\n" +
	"药品名称,批号,规格,数量,有效期\n" +
	"阿莫西林,B123,0.25g,20,2026-01-01\n" +
	"阿莫西林,B123,0.25g,20,2026-01-01\n" +
	"碘伏,,,,无\n"

func TestImportRecords_FullPipeline(t *testing.T) {
	repo := &memRepo{}
	events := &recordingPublisher{}
	h := NewImportRecordsHandler(repo, events)

	summary, err := h.Handle(context.Background(), "stock.csv", []byte(sampleUpload))
	require.NoError(t, err)

	assert.Equal(t, "类目A", summary.Category)
	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 3, summary.Accepted)
	// The repeated row is a duplicate and is skipped, not fatal.
	assert.Equal(t, 2, summary.Created)
	assert.Len(t, repo.created, 2)

	require.Len(t, events.events, 1)
	assert.Equal(t, "stock.csv", events.events[0].Filename)
	assert.Equal(t, 2, events.events[0].Created)
}

func TestImportRecords_RejectsNonCSV(t *testing.T) {
	h := NewImportRecordsHandler(&memRepo{}, nil)

	_, err := h.Handle(context.Background(), "stock.xlsx", []byte("data"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportRecords_UnclassifiedUploadIsEmptyResult(t *testing.T) {
	repo := &memRepo{}
	h := NewImportRecordsHandler(repo, nil)

	summary, err := h.Handle(context.Background(), "stock.csv", []byte("a,b\nc,d\n"))
	require.NoError(t, err)
	assert.Zero(t, summary.Attempted)
	assert.Zero(t, summary.Accepted)
	assert.Zero(t, summary.Created)
	assert.Empty(t, repo.created)
}

func TestImportRecords_StoreErrorAborts(t *testing.T) {
	repo := &memRepo{createErr: errors.New("db down")}
	h := NewImportRecordsHandler(repo, nil)

	_, err := h.Handle(context.Background(), "stock.csv", []byte(sampleUpload))
	assert.Error(t, err)
}

func TestImportRecords_GBKUpload(t *testing.T) {
	// "药品,有效期\n碘伏,2026-01-01\n" encoded in GBK
	gbk := []byte{
		0xD2, 0xA9, 0xC6, 0xB7, ',', 0xD3, 0xD0, 0xD0, 0xA7, 0xC6, 0xDA, '\n',
		0xB5, 0xE2, 0xB7, 0xFC, ',', '2', '0', '2', '6', '-', '0', '1', '-', '0', '1', '\n',
	}

	repo := &memRepo{}
	h := NewImportRecordsHandler(repo, nil)

	summary, err := h.Handle(context.Background(), "stock.csv", gbk)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "碘伏", repo.created[0].Name)
}
