package domain

import (
	"time"
)

// Admin represents an administrator account
type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed
	IsSys     bool      `json:"is_sys" gorm:"not null;default:false"`
	IsDel     bool      `json:"is_del" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Admin) TableName() string {
	return "admins"
}

// AdminRepository defines the contract for admin account data access
type AdminRepository interface {
	Create(admin *Admin) error
	FindByID(id uint) (*Admin, error)
	FindByUsername(username string) (*Admin, error)
	FindAll(limit, offset int) ([]Admin, error)
	Update(admin *Admin) error
	SoftDelete(id uint) error
	Count() (int64, error)
}
