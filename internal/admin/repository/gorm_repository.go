package repository

import (
	"github.com/medstock/medstock/internal/admin/domain"
	"gorm.io/gorm"
)

type GormAdminRepository struct {
	db *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Admin{})
}

func (r *GormAdminRepository) Create(admin *domain.Admin) error {
	return r.db.Create(admin).Error
}

func (r *GormAdminRepository) FindByID(id uint) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormAdminRepository) FindByUsername(username string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.Where("username = ? AND is_del = ?", username, false).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormAdminRepository) FindAll(limit, offset int) ([]domain.Admin, error) {
	var admins []domain.Admin
	err := r.db.Where("is_del = ?", false).
		Limit(limit).Offset(offset).
		Order("id ASC").
		Find(&admins).Error
	return admins, err
}

func (r *GormAdminRepository) Update(admin *domain.Admin) error {
	return r.db.Save(admin).Error
}

func (r *GormAdminRepository) SoftDelete(id uint) error {
	return r.db.Model(&domain.Admin{}).
		Where("id = ?", id).
		Update("is_del", true).Error
}

func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Admin{}).
		Where("is_del = ?", false).
		Count(&count).Error
	return count, err
}
