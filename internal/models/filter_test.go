package models_test

import (
	"testing"

	"github.com/asha0ahmed/rentnest/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }

func sampleProperty() *models.Property {
	return &models.Property{
		Title:        "Lakeview Apartment",
		Description:  "Bright three bedroom flat near the lake",
		PropertyType: models.PropertyTypeApartment,
		Location: models.Location{
			Division: "Dhaka",
			District: "Gazipur",
			Area:     "Tongi",
		},
		Rent: models.Rent{Amount: 3000, Period: "monthly"},
		Features: models.Features{
			Bedrooms:  3,
			Bathrooms: 2,
			Furnished: true,
		},
		IsAvailable: true,
	}
}

func TestPropertyFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter models.PropertyFilter
		want   bool
	}{
		{"empty filter matches everything", models.PropertyFilter{}, true},
		{"property type exact match", models.PropertyFilter{PropertyType: strPtr("apartment")}, true},
		{"property type mismatch", models.PropertyFilter{PropertyType: strPtr("house")}, false},
		{"division substring case-insensitive", models.PropertyFilter{Division: strPtr("dha")}, true},
		{"district substring case-insensitive", models.PropertyFilter{District: strPtr("GAZI")}, true},
		{"area mismatch", models.PropertyFilter{Area: strPtr("Mirpur")}, false},
		{"rent inside inclusive range", models.PropertyFilter{MinRent: floatPtr(1000), MaxRent: floatPtr(5000)}, true},
		{"rent equal to min bound", models.PropertyFilter{MinRent: floatPtr(3000)}, true},
		{"rent equal to max bound", models.PropertyFilter{MaxRent: floatPtr(3000)}, true},
		{"rent below min", models.PropertyFilter{MinRent: floatPtr(3500)}, false},
		{"rent above max", models.PropertyFilter{MaxRent: floatPtr(2500)}, false},
		{"bedrooms exact match", models.PropertyFilter{Bedrooms: intPtr(3)}, true},
		{"bedrooms mismatch", models.PropertyFilter{Bedrooms: intPtr(2)}, false},
		{"furnished match", models.PropertyFilter{Furnished: boolPtr(true)}, true},
		{"furnished mismatch", models.PropertyFilter{Furnished: boolPtr(false)}, false},
		{"search matches title case-insensitive", models.PropertyFilter{Search: strPtr("LAKEVIEW")}, true},
		{"search matches description", models.PropertyFilter{Search: strPtr("near the lake")}, true},
		{"search matches neither", models.PropertyFilter{Search: strPtr("penthouse")}, false},
		{
			"all set filters must match",
			models.PropertyFilter{
				PropertyType: strPtr("apartment"),
				District:     strPtr("gazipur"),
				MinRent:      floatPtr(1000),
				MaxRent:      floatPtr(5000),
				Bedrooms:     intPtr(3),
				Furnished:    boolPtr(true),
				Search:       strPtr("lake"),
			},
			true,
		},
		{
			"one failing filter fails the conjunction",
			models.PropertyFilter{
				PropertyType: strPtr("apartment"),
				Bedrooms:     intPtr(4),
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(sampleProperty()))
		})
	}
}

func TestPropertyFilter_Matches_RentRangeBounds(t *testing.T) {
	cheap := sampleProperty()
	cheap.Rent.Amount = 3000
	expensive := sampleProperty()
	expensive.Rent.Amount = 6000

	filter := models.PropertyFilter{MinRent: floatPtr(1000), MaxRent: floatPtr(5000)}
	assert.True(t, filter.Matches(cheap))
	assert.False(t, filter.Matches(expensive))
}
