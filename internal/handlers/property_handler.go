package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/asha0ahmed/rentnest/internal/middleware"
	"github.com/asha0ahmed/rentnest/internal/models"
	"github.com/asha0ahmed/rentnest/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PropertyHandler handles HTTP requests for property listings.
type PropertyHandler struct {
	service     *services.PropertyService
	authService *services.AuthService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *services.PropertyService, authService *services.AuthService) *PropertyHandler {
	return &PropertyHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the property routes with the Fiber app.
// Listing browsing is public; everything that mutates listings requires
// an authenticated owner account.
func (h *PropertyHandler) RegisterRoutes(router fiber.Router) {
	auth := middleware.AuthRequired(h.authService)
	ownerOnly := middleware.OwnerOnly()

	props := router.Group("/properties")

	props.Get("/", h.HandleListProperties)
	// Registered before "/:id" so "my" is not captured as an id.
	props.Get("/my", auth, ownerOnly, h.HandleMyProperties)
	props.Get("/:id", h.HandleGetProperty)

	props.Post("/", auth, ownerOnly, h.HandleCreateProperty)
	props.Put("/:id", auth, ownerOnly, h.HandleUpdateProperty)
	props.Delete("/:id", auth, ownerOnly, h.HandleDeleteProperty)
	props.Patch("/:id/availability", auth, ownerOnly, h.HandleToggleAvailability)
}

// HandleListProperties returns a page of available listings matching the
// query-parameter filters.
func (h *PropertyHandler) HandleListProperties(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid filter parameters",
			"error":   err.Error(),
		})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.service.ListProperties(filter, page, limit)
	if err != nil {
		log.Printf("Error listing properties: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve properties",
		})
	}
	return c.JSON(result)
}

// HandleGetProperty retrieves a single listing by its ID.
func (h *PropertyHandler) HandleGetProperty(c *fiber.Ctx) error {
	property, err := h.service.GetProperty(c.Params("id"))
	if err != nil {
		return h.errorResponse(c, err, "Could not retrieve property")
	}
	return c.JSON(property)
}

// HandleMyProperties returns every listing owned by the caller,
// including unavailable ones.
func (h *PropertyHandler) HandleMyProperties(c *fiber.Ctx) error {
	properties, err := h.service.ListOwnerProperties(middleware.CallerID(c))
	if err != nil {
		log.Printf("Error listing owner properties: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve properties",
		})
	}
	return c.JSON(fiber.Map{"properties": properties})
}

// createPropertyRequest carries the listing fields of a create request.
// With multipart requests the structured sub-fields arrive as JSON
// strings and are parsed individually.
type createPropertyRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PropertyType string          `json:"property_type"`
	Location     models.Location `json:"location"`
	Rent         models.Rent     `json:"rent"`
	Features     models.Features `json:"features"`
	Amenities    []string        `json:"amenities"`
	Contact      models.Contact  `json:"contact"`
	Terms        models.Terms    `json:"terms"`
}

// HandleCreateProperty creates a new listing for the authenticated
// owner. Accepts multipart/form-data (fields plus image files) or plain
// JSON (no images).
func (h *PropertyHandler) HandleCreateProperty(c *fiber.Ctx) error {
	var req createPropertyRequest
	var images []services.ImageUpload

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid multipart form",
				"error":   err.Error(),
			})
		}
		if err := parsePropertyForm(c, &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		images, err = readImages(form.File["images"])
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded images",
				"error":   err.Error(),
			})
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing create property body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	property := models.Property{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Location:     req.Location,
		Rent:         req.Rent,
		Features:     req.Features,
		Amenities:    req.Amenities,
		Contact:      req.Contact,
		Terms:        req.Terms,
	}

	created, err := h.service.CreateProperty(middleware.CallerID(c), &property, images)
	if err != nil {
		return h.errorResponse(c, err, "Could not create property")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProperty applies a partial update to a listing.
func (h *PropertyHandler) HandleUpdateProperty(c *fiber.Ctx) error {
	var patch services.PropertyPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update property body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	property, err := h.service.UpdateProperty(c.Params("id"), middleware.CallerID(c), patch)
	if err != nil {
		return h.errorResponse(c, err, "Could not update property")
	}
	return c.JSON(property)
}

// HandleDeleteProperty permanently removes a listing.
func (h *PropertyHandler) HandleDeleteProperty(c *fiber.Ctx) error {
	if err := h.service.DeleteProperty(c.Params("id"), middleware.CallerID(c)); err != nil {
		return h.errorResponse(c, err, "Could not delete property")
	}
	return c.JSON(fiber.Map{
		"message": "Property deleted successfully",
	})
}

// HandleToggleAvailability flips a listing's availability flag.
func (h *PropertyHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	property, err := h.service.ToggleAvailability(c.Params("id"), middleware.CallerID(c))
	if err != nil {
		return h.errorResponse(c, err, "Could not toggle availability")
	}
	return c.JSON(property)
}

// errorResponse maps service errors onto HTTP statuses. Upstream faults
// are surfaced without internal detail.
func (h *PropertyHandler) errorResponse(c *fiber.Ctx, err error, message string) error {
	log.Printf("%s: %v", message, err)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Property not found",
		})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not own this property",
		})
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Upstream service failure",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
	})
}

// parseFilter builds the listing filter from optional query parameters.
func parseFilter(c *fiber.Ctx) (models.PropertyFilter, error) {
	var filter models.PropertyFilter

	if v := c.Query("propertyType"); v != "" {
		filter.PropertyType = &v
	}
	if v := c.Query("division"); v != "" {
		filter.Division = &v
	}
	if v := c.Query("district"); v != "" {
		filter.District = &v
	}
	if v := c.Query("area"); v != "" {
		filter.Area = &v
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("minRent"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, fmt.Errorf("minRent must be a number")
		}
		filter.MinRent = &amount
	}
	if v := c.Query("maxRent"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, fmt.Errorf("maxRent must be a number")
		}
		filter.MaxRent = &amount
	}
	if v := c.Query("bedrooms"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("bedrooms must be an integer")
		}
		filter.Bedrooms = &count
	}
	if v := c.Query("furnished"); v != "" {
		furnished, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("furnished must be a boolean")
		}
		filter.Furnished = &furnished
	}

	return filter, nil
}

// parsePropertyForm fills req from multipart form values. Structured
// sub-fields arrive as JSON strings; an unparsable one is a validation
// failure naming the field.
func parsePropertyForm(c *fiber.Ctx, req *createPropertyRequest) error {
	req.Title = c.FormValue("title")
	req.Description = c.FormValue("description")
	req.PropertyType = c.FormValue("property_type")

	subFields := []struct {
		name string
		dst  interface{}
	}{
		{"location", &req.Location},
		{"rent", &req.Rent},
		{"features", &req.Features},
		{"amenities", &req.Amenities},
		{"contact", &req.Contact},
		{"terms", &req.Terms},
	}
	for _, field := range subFields {
		raw := c.FormValue(field.name)
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), field.dst); err != nil {
			return fmt.Errorf("invalid JSON in field '%s': %v", field.name, err)
		}
	}
	return nil
}

// readImages loads uploaded files into memory in form order.
func readImages(files []*multipart.FileHeader) ([]services.ImageUpload, error) {
	var images []services.ImageUpload
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		images = append(images, services.ImageUpload{
			Filename: fh.Filename,
			Data:     data,
		})
	}
	return images, nil
}
