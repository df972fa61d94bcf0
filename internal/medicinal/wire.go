//go:build wireinject
// +build wireinject

package medicinal

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/medstock/medstock/internal/medicinal/delivery/http"
	"github.com/medstock/medstock/internal/medicinal/usecase/command"
)

// InitializeHTTPHandler initializes the medicinal HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, events command.ImportEventPublisher) (*httpDelivery.MedicinalHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewMedicinalHandler,
	)
	return nil, nil
}
