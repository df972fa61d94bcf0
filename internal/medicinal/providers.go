package medicinal

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/internal/medicinal/repository"
)

// ProvideMedicinalRepository provides the medicinal repository
func ProvideMedicinalRepository(db *gorm.DB) domain.MedicinalRepository {
	return repository.NewGormMedicinalRepositoryWithTracing(db)
}

// RepositorySet groups repository providers
var RepositorySet = wire.NewSet(
	ProvideMedicinalRepository,
)
