package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// SentinelEmpty is substituted for optional text fields that arrive blank.
const SentinelEmpty = "Empty"

// ErrDuplicate is returned when an active record with the same
// (name, category, batch number) triple already exists.
var ErrDuplicate = errors.New("medicinal already exists")

// Medicinal represents one tracked inventory item. Validity carries date
// semantics only; time of day is never compared.
type Medicinal struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Category       string     `json:"category" gorm:"not null;default:'Empty';index"`
	Name           string     `json:"name" gorm:"not null;index"`
	BatchNumber    string     `json:"batch_number" gorm:"not null;default:'Empty'"`
	Spec           string     `json:"spec" gorm:"not null;default:'Empty'"`
	Count          string     `json:"count" gorm:"not null;default:'Empty'"`
	Validity       time.Time  `json:"validity" gorm:"type:date;not null;index"`
	IsDel          bool       `json:"is_del" gorm:"not null;default:false;index"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Medicinal) TableName() string {
	return "medicinals"
}

// IsExpired reports whether the item has reached its validity date,
// compared by calendar day.
func (m *Medicinal) IsExpired(now time.Time) bool {
	return !DateOf(m.Validity).After(DateOf(now))
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ListFilter narrows paged catalog queries. A negative PageSize disables
// pagination and returns every match.
type ListFilter struct {
	Keyword  string
	IsDel    bool
	Page     int
	PageSize int
}

// MedicinalRepository defines the contract for medicinal data access
type MedicinalRepository interface {
	Create(m *Medicinal) error
	FindByID(id uint) (*Medicinal, error)
	FindAll(filter ListFilter) ([]Medicinal, int64, error)
	Update(m *Medicinal) error
	SoftDelete(id uint) error
	Recover(id uint) error

	// FindExpired returns active records whose validity is on or before the
	// given day and whose notify watermark has lapsed.
	FindExpired(now time.Time) ([]Medicinal, error)
	// FindExpiringSoon returns active records expiring within (now, now+days]
	// whose notify watermark has lapsed. Records already expired are excluded.
	FindExpiringSoon(now time.Time, days int) ([]Medicinal, error)
	// MarkNotified sets the notify watermark for the batch in one statement.
	MarkNotified(ids []uint, watermark time.Time) error
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
