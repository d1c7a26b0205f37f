package repositories

import (
	"fmt"
	"strings"

	"github.com/asha0ahmed/rentnest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPropertyRepository is a GORM implementation of PropertyRepository.
type GORMPropertyRepository struct {
	db *gorm.DB
}

// NewGORMPropertyRepository creates a new instance of GORMPropertyRepository.
func NewGORMPropertyRepository(db *gorm.DB) *GORMPropertyRepository {
	return &GORMPropertyRepository{
		db: db,
	}
}

// Create creates a new property in the database.
func (r *GORMPropertyRepository) Create(property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if err := r.db.Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetByID retrieves a single property by its ID from the database.
func (r *GORMPropertyRepository) GetByID(id string) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("property with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property by ID %s: %w", id, err)
	}
	return &property, nil
}

// List retrieves available properties matching the filter, newest first.
// The returned total counts every match before offset/limit.
func (r *GORMPropertyRepository) List(filter models.PropertyFilter, offset, limit int) ([]models.Property, int64, error) {
	query := applyFilter(r.db.Model(&models.Property{}).Where("is_available = ?", true), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var properties []models.Property
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, total, nil
}

// ListByOwner retrieves every property owned by ownerID, including
// unavailable ones, newest first.
func (r *GORMPropertyRepository) ListByOwner(ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties for owner %s: %w", ownerID, err)
	}
	return properties, nil
}

// Update updates an existing property in the database.
func (r *GORMPropertyRepository) Update(property *models.Property) error {
	res := r.db.Save(property) // Save replaces all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("property with ID %s: %w", property.ID, models.ErrNotFound)
	}
	return nil
}

// Delete permanently removes a property by its ID from the database.
func (r *GORMPropertyRepository) Delete(id string) error {
	res := r.db.Delete(&models.Property{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("property with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// applyFilter compiles a PropertyFilter into GORM where-clauses. It is
// the store-native counterpart of models.PropertyFilter.Matches.
func applyFilter(query *gorm.DB, filter models.PropertyFilter) *gorm.DB {
	if filter.PropertyType != nil {
		query = query.Where("property_type = ?", *filter.PropertyType)
	}
	if filter.Division != nil {
		query = query.Where("LOWER(location_division) LIKE ?", substring(*filter.Division))
	}
	if filter.District != nil {
		query = query.Where("LOWER(location_district) LIKE ?", substring(*filter.District))
	}
	if filter.Area != nil {
		query = query.Where("LOWER(location_area) LIKE ?", substring(*filter.Area))
	}
	if filter.MinRent != nil {
		query = query.Where("rent_amount >= ?", *filter.MinRent)
	}
	if filter.MaxRent != nil {
		query = query.Where("rent_amount <= ?", *filter.MaxRent)
	}
	if filter.Bedrooms != nil {
		query = query.Where("feature_bedrooms = ?", *filter.Bedrooms)
	}
	if filter.Furnished != nil {
		query = query.Where("feature_furnished = ?", *filter.Furnished)
	}
	if filter.Search != nil {
		pattern := substring(*filter.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return query
}

func substring(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
