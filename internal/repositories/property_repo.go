package repositories

import "github.com/asha0ahmed/rentnest/internal/models"

// PropertyRepository defines the interface for property data access.
//
// List applies the filter on top of the availability gate (only
// available properties are returned), ordered newest first, and reports
// the total matching count before offset/limit are applied.
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id string) (*models.Property, error)
	List(filter models.PropertyFilter, offset, limit int) ([]models.Property, int64, error)
	ListByOwner(ownerID string) ([]models.Property, error)
	Update(property *models.Property) error
	Delete(id string) error
}
