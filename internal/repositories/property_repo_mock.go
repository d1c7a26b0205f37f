package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/asha0ahmed/rentnest/internal/models"

	"github.com/google/uuid"
)

// MockPropertyRepository is an in-memory implementation of
// PropertyRepository. It applies PropertyFilter.Matches directly, so
// filter and pagination behavior can be tested without a database.
type MockPropertyRepository struct {
	properties map[string]models.Property
	mu         sync.RWMutex
}

// NewMockPropertyRepository creates a new instance of MockPropertyRepository.
func NewMockPropertyRepository() *MockPropertyRepository {
	return &MockPropertyRepository{
		properties: make(map[string]models.Property),
	}
}

// Create adds a new property.
func (r *MockPropertyRepository) Create(property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now()
	}
	property.UpdatedAt = time.Now()
	r.properties[property.ID] = *property
	return nil
}

// GetByID returns a property by its ID.
func (r *MockPropertyRepository) GetByID(id string) (*models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	property, ok := r.properties[id]
	if !ok {
		return nil, fmt.Errorf("property with ID %s: %w", id, models.ErrNotFound)
	}
	return &property, nil
}

// List returns available properties matching the filter, newest first.
func (r *MockPropertyRepository) List(filter models.PropertyFilter, offset, limit int) ([]models.Property, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Property
	for _, p := range r.properties {
		if !p.IsAvailable {
			continue
		}
		if filter.Matches(&p) {
			matched = append(matched, p)
		}
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.Property{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ListByOwner returns all properties owned by ownerID, newest first.
func (r *MockPropertyRepository) ListByOwner(ownerID string) ([]models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []models.Property
	for _, p := range r.properties {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	sortNewestFirst(owned)
	return owned, nil
}

// Update modifies an existing property.
func (r *MockPropertyRepository) Update(property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.properties[property.ID]
	if !ok {
		return fmt.Errorf("property with ID %s: %w", property.ID, models.ErrNotFound)
	}
	property.UpdatedAt = time.Now()
	r.properties[property.ID] = *property
	return nil
}

// Delete removes a property by its ID.
func (r *MockPropertyRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.properties[id]
	if !ok {
		return fmt.Errorf("property with ID %s: %w", id, models.ErrNotFound)
	}
	delete(r.properties, id)
	return nil
}

func sortNewestFirst(properties []models.Property) {
	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})
}
