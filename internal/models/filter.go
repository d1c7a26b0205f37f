package models

import "strings"

// PropertyFilter is the explicit filter specification for public listing
// queries. Nil fields mean "not filtered". All set fields are combined
// with AND; Search is an OR over title and description nested inside
// that conjunction.
type PropertyFilter struct {
	PropertyType *string
	Division     *string
	District     *string
	Area         *string
	MinRent      *float64
	MaxRent      *float64
	Bedrooms     *int
	Furnished    *bool
	Search       *string
}

// Matches reports whether p satisfies every set filter field. It is the
// in-memory mirror of the SQL the GORM repository compiles from the same
// filter, and is what the mock repository uses.
//
// Availability is not part of the filter: public listing queries always
// restrict to available properties on top of this predicate.
func (f PropertyFilter) Matches(p *Property) bool {
	if f.PropertyType != nil && p.PropertyType != *f.PropertyType {
		return false
	}
	if f.Division != nil && !containsFold(p.Location.Division, *f.Division) {
		return false
	}
	if f.District != nil && !containsFold(p.Location.District, *f.District) {
		return false
	}
	if f.Area != nil && !containsFold(p.Location.Area, *f.Area) {
		return false
	}
	if f.MinRent != nil && p.Rent.Amount < *f.MinRent {
		return false
	}
	if f.MaxRent != nil && p.Rent.Amount > *f.MaxRent {
		return false
	}
	if f.Bedrooms != nil && p.Features.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.Furnished != nil && p.Features.Furnished != *f.Furnished {
		return false
	}
	if f.Search != nil && !containsFold(p.Title, *f.Search) && !containsFold(p.Description, *f.Search) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
