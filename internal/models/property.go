package models

import "time"

// Property types accepted for a listing.
const (
	PropertyTypeApartment  = "apartment"
	PropertyTypeHouse      = "house"
	PropertyTypeRoom       = "room"
	PropertyTypeSublet     = "sublet"
	PropertyTypeCommercial = "commercial"
	PropertyTypeHostel     = "hostel"
)

// Location pinpoints a listing within division/district/area.
type Location struct {
	Division string `json:"division" validate:"required"`
	District string `json:"district" validate:"required"`
	Area     string `json:"area" validate:"required"`
}

// Rent is the asking price per period (e.g. "monthly").
type Rent struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Period string  `json:"period" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

// Features describes the physical characteristics of a listing.
type Features struct {
	Bedrooms  int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms int     `json:"bathrooms" validate:"gte=0"`
	Balconies int     `json:"balconies" validate:"gte=0"`
	AreaSqFt  float64 `json:"area_sqft" validate:"gte=0"`
	Furnished bool    `json:"furnished"`
	Parking   bool    `json:"parking"`
}

// Contact is how interested tenants reach the owner.
type Contact struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Whatsapp string `json:"whatsapp,omitempty"`
}

// Terms captures the rental conditions attached to a listing.
type Terms struct {
	MinimumStayMonths int     `json:"minimum_stay_months,omitempty"`
	AdvanceMonths     int     `json:"advance_months,omitempty"`
	ServiceCharge     float64 `json:"service_charge,omitempty"`
	PetsAllowed       bool    `json:"pets_allowed,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// Photo is one uploaded listing image. Order is significant and matches
// the upload order.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Property represents a rental listing. The owner reference is set from
// the authenticated caller at creation and never changes afterwards.
type Property struct {
	ID           string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID      string   `json:"owner_id" gorm:"type:varchar(36);index" validate:"required"`
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description" validate:"required,max=5000"`
	PropertyType string   `json:"property_type" gorm:"type:varchar(20)" validate:"required,oneof=apartment house room sublet commercial hostel"`
	Location     Location `json:"location" gorm:"embedded;embeddedPrefix:location_" validate:"required"`
	Rent         Rent     `json:"rent" gorm:"embedded;embeddedPrefix:rent_" validate:"required"`
	Features     Features `json:"features" gorm:"embedded;embeddedPrefix:feature_"`
	Amenities    []string `json:"amenities" gorm:"serializer:json"`
	Photos       []Photo  `json:"photos" gorm:"serializer:json"`
	Contact      Contact  `json:"contact" gorm:"embedded;embeddedPrefix:contact_" validate:"required"`
	Terms        Terms    `json:"terms" gorm:"serializer:json"`
	IsAvailable  bool     `json:"is_available" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
