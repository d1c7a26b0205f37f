package services

import (
	"fmt"
	"log"
	"math"

	"github.com/asha0ahmed/rentnest/internal/models"
	"github.com/asha0ahmed/rentnest/internal/repositories"
	"github.com/asha0ahmed/rentnest/pkg/blobstore"
	"github.com/asha0ahmed/rentnest/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	photoFolder = "properties"
)

// ImageUpload is one listing photo submitted with a create request.
type ImageUpload struct {
	Filename string
	Caption  string
	Data     []byte
}

// PropertyPatch is a partial update of a listing. Nil fields are left
// unchanged. The owner is deliberately not part of the patch: it is
// immutable after creation.
type PropertyPatch struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	PropertyType *string          `json:"property_type"`
	Location     *models.Location `json:"location"`
	Rent         *models.Rent     `json:"rent"`
	Features     *models.Features `json:"features"`
	Amenities    *[]string        `json:"amenities"`
	Photos       *[]models.Photo  `json:"photos"`
	Contact      *models.Contact  `json:"contact"`
	Terms        *models.Terms    `json:"terms"`
}

// PropertyListResult is a page of public listings plus pagination info.
type PropertyListResult struct {
	Properties  []models.Property `json:"properties"`
	Total       int64             `json:"total"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
}

// PropertyService handles business logic related to property listings.
type PropertyService struct {
	repo     repositories.PropertyRepository
	blobs    blobstore.Store
	mqClient *rabbitmq.Client
	validate *validator.Validate
}

// NewPropertyService creates a new PropertyService. mqClient may be nil,
// in which case listing events are skipped.
func NewPropertyService(repo repositories.PropertyRepository, blobs blobstore.Store, mqClient *rabbitmq.Client) *PropertyService {
	return &PropertyService{
		repo:     repo,
		blobs:    blobs,
		mqClient: mqClient,
		validate: validator.New(),
	}
}

// CreateProperty validates and persists a new listing for ownerID.
// Images are uploaded to the blob store in order before anything is
// persisted; photo order matches image order, and any upload failure
// aborts the whole create.
func (s *PropertyService) CreateProperty(ownerID string, property *models.Property, images []ImageUpload) (*models.Property, error) {
	property.ID = uuid.New().String()
	property.OwnerID = ownerID // never taken from client input
	property.IsAvailable = true

	if err := s.validate.Struct(property); err != nil {
		return nil, validationError(err)
	}

	for _, img := range images {
		url, err := s.blobs.Upload(img.Data, img.Filename, photoFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", img.Filename, models.ErrUpstream)
		}
		property.Photos = append(property.Photos, models.Photo{URL: url, Caption: img.Caption})
	}

	if err := s.repo.Create(property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.publishEvent("listing.created", property)
	return property, nil
}

// ListProperties returns a page of available listings matching the
// filter, newest first. Page and limit fall back to 1 and 10.
func (s *PropertyService) ListProperties(filter models.PropertyFilter, page, limit int) (*PropertyListResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	properties, total, err := s.repo.List(filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}

	return &PropertyListResult{
		Properties:  properties,
		Total:       total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

// ListOwnerProperties returns every listing owned by ownerID, including
// unavailable ones, newest first.
func (s *PropertyService) ListOwnerProperties(ownerID string) ([]models.Property, error) {
	properties, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner properties: %w", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}

// GetProperty retrieves a single listing by its ID. A malformed ID is
// reported the same as an absent one.
func (s *PropertyService) GetProperty(id string) (*models.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("property with ID %s: %w", id, models.ErrNotFound)
	}
	return s.repo.GetByID(id)
}

// UpdateProperty applies a partial update to a listing owned by
// callerID. The not-found check runs before the ownership check, and the
// patched record is re-validated against the same rules as create.
func (s *PropertyService) UpdateProperty(id, callerID string, patch PropertyPatch) (*models.Property, error) {
	property, err := s.GetProperty(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(property.OwnerID, callerID); err != nil {
		return nil, err
	}

	applyPatch(property, patch)

	if err := s.validate.Struct(property); err != nil {
		return nil, validationError(err)
	}
	if err := s.repo.Update(property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return property, nil
}

// DeleteProperty permanently removes a listing owned by callerID.
func (s *PropertyService) DeleteProperty(id, callerID string) error {
	property, err := s.GetProperty(id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(property.OwnerID, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.publishEvent("listing.deleted", property)
	return nil
}

// ToggleAvailability flips the availability flag of a listing owned by
// callerID and returns the new state.
func (s *PropertyService) ToggleAvailability(id, callerID string) (*models.Property, error) {
	property, err := s.GetProperty(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(property.OwnerID, callerID); err != nil {
		return nil, err
	}

	property.IsAvailable = !property.IsAvailable
	if err := s.repo.Update(property); err != nil {
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}
	return property, nil
}

// authorizeOwner is the single ownership gate applied by every mutating
// listing operation.
func authorizeOwner(resourceOwnerID, callerID string) error {
	if resourceOwnerID != callerID {
		return fmt.Errorf("caller does not own this property: %w", models.ErrForbidden)
	}
	return nil
}

// applyPatch copies every set patch field onto the property. Unset
// fields are retained.
func applyPatch(property *models.Property, patch PropertyPatch) {
	if patch.Title != nil {
		property.Title = *patch.Title
	}
	if patch.Description != nil {
		property.Description = *patch.Description
	}
	if patch.PropertyType != nil {
		property.PropertyType = *patch.PropertyType
	}
	if patch.Location != nil {
		property.Location = *patch.Location
	}
	if patch.Rent != nil {
		property.Rent = *patch.Rent
	}
	if patch.Features != nil {
		property.Features = *patch.Features
	}
	if patch.Amenities != nil {
		property.Amenities = *patch.Amenities
	}
	if patch.Photos != nil {
		property.Photos = *patch.Photos
	}
	if patch.Contact != nil {
		property.Contact = *patch.Contact
	}
	if patch.Terms != nil {
		property.Terms = *patch.Terms
	}
}

// validationError converts validator errors into the validation error
// kind with per-field detail.
func validationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			fields = append(fields, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return fmt.Errorf("%v: %w", fields, models.ErrValidation)
	}
	return fmt.Errorf("%v: %w", err, models.ErrValidation)
}

// publishEvent emits a listing lifecycle event. Publish failures are
// logged, never surfaced to the caller.
func (s *PropertyService) publishEvent(event string, property *models.Property) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"property_id": property.ID,
		"owner_id":    property.OwnerID,
		"title":       property.Title,
	}
	if err := s.mqClient.PublishListingEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for property %s: %v", event, property.ID, err)
	}
}
