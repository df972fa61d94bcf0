package repository

import (
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"gorm.io/gorm"
)

type GormMedicinalRepository struct {
	db *gorm.DB
}

func NewGormMedicinalRepository(db *gorm.DB) *GormMedicinalRepository {
	return &GormMedicinalRepository{db: db}
}

func (r *GormMedicinalRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Medicinal{})
}

// Create inserts a record unless an active duplicate exists for the same
// (name, category, batch_number) triple.
func (r *GormMedicinalRepository) Create(m *domain.Medicinal) error {
	var count int64
	err := r.db.Model(&domain.Medicinal{}).
		Where("name = ? AND category = ? AND batch_number = ? AND is_del = ?",
			m.Name, m.Category, m.BatchNumber, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicate
	}
	return r.db.Create(m).Error
}

func (r *GormMedicinalRepository) FindByID(id uint) (*domain.Medicinal, error) {
	var m domain.Medicinal
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMedicinalRepository) FindAll(filter domain.ListFilter) ([]domain.Medicinal, int64, error) {
	if filter.PageSize == 0 {
		filter.PageSize = 30
	}
	if filter.Page < 0 {
		filter.Page = 0
	}

	q := r.db.Model(&domain.Medicinal{}).Where("is_del = ?", filter.IsDel)
	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []domain.Medicinal
	q = q.Order("validity ASC, id ASC")
	if filter.PageSize > 0 {
		q = q.Limit(filter.PageSize).Offset(filter.Page * filter.PageSize)
	}
	err := q.Find(&list).Error
	return list, total, err
}

func (r *GormMedicinalRepository) Update(m *domain.Medicinal) error {
	return r.db.Save(m).Error
}

func (r *GormMedicinalRepository) SoftDelete(id uint) error {
	return r.db.Model(&domain.Medicinal{}).
		Where("id = ?", id).
		Update("is_del", true).Error
}

func (r *GormMedicinalRepository) Recover(id uint) error {
	return r.db.Model(&domain.Medicinal{}).
		Where("id = ?", id).
		Update("is_del", false).Error
}

// The watermark stores a suppress-until instant, so the lapse check is a
// simple comparison against the scan time.
func notifyLapsed(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Where("last_notified_at IS NULL OR last_notified_at <= ?", now)
}

func (r *GormMedicinalRepository) FindExpired(now time.Time) ([]domain.Medicinal, error) {
	today := domain.DateOf(now)
	var list []domain.Medicinal
	q := r.db.Where("is_del = ? AND validity <= ?", false, today)
	err := notifyLapsed(q, now).Order("validity ASC").Find(&list).Error
	return list, err
}

func (r *GormMedicinalRepository) FindExpiringSoon(now time.Time, days int) ([]domain.Medicinal, error) {
	today := domain.DateOf(now)
	// Lower bound excludes today so the expired band keeps precedence.
	from := today.AddDate(0, 0, 1)
	to := today.AddDate(0, 0, days)

	var list []domain.Medicinal
	q := r.db.Where("is_del = ? AND validity >= ? AND validity <= ?", false, from, to)
	err := notifyLapsed(q, now).Order("validity ASC").Find(&list).Error
	return list, err
}

func (r *GormMedicinalRepository) MarkNotified(ids []uint, watermark time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.Medicinal{}).
		Where("id IN ?", ids).
		Update("last_notified_at", watermark).Error
}
