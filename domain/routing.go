package domain

import (
	"errors"
	"fmt"
)

// Routing errors. Routing fails closed: an unmapped category rejects the
// submission rather than defaulting to a catch-all department.
var (
	ErrUnknownCategory = errors.New("unknown complaint category")
	ErrUnknownDistrict = errors.New("unknown district")
)

// Complaint categories. Every category maps to exactly one department below.
const (
	CategoryWaterSupply   = "Water Supply"
	CategoryElectricity   = "Electricity"
	CategoryRoads         = "Roads & Infrastructure"
	CategorySanitation    = "Sanitation & Waste"
	CategoryTransport     = "Public Transport"
	CategoryHealthcare    = "Healthcare Services"
	CategoryEducation     = "Education"
	CategoryLawAndOrder   = "Law & Order"
	CategoryPropertyLand  = "Property & Land"
	CategoryOther         = "Other"
)

// District codes served by the portal.
const (
	DistrictA = "District A"
	DistrictB = "District B"
	DistrictC = "District C"
	DistrictD = "District D"
	DistrictE = "District E"
)

var categories = []string{
	CategoryWaterSupply,
	CategoryElectricity,
	CategoryRoads,
	CategorySanitation,
	CategoryTransport,
	CategoryHealthcare,
	CategoryEducation,
	CategoryLawAndOrder,
	CategoryPropertyLand,
	CategoryOther,
}

var districts = []string{DistrictA, DistrictB, DistrictC, DistrictD, DistrictE}

var departmentByCategory = map[string]string{
	CategoryWaterSupply:  "Water Department",
	CategoryElectricity:  "Electricity Board",
	CategoryRoads:        "Public Works Department",
	CategorySanitation:   "Municipal Corporation",
	CategoryTransport:    "Transport Authority",
	CategoryHealthcare:   "Health Department",
	CategoryEducation:    "Education Department",
	CategoryLawAndOrder:  "Police Department",
	CategoryPropertyLand: "Revenue Department",
	CategoryOther:        "General Administration",
}

// Routing is the department/office assignment derived at creation time.
type Routing struct {
	Department string `json:"department"`
	Office     string `json:"office"`
}

// Categories returns the enumerated category set in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Districts returns the enumerated district set in display order.
func Districts() []string {
	out := make([]string, len(districts))
	copy(out, districts)
	return out
}

// IsValidCategory reports whether the category is in the enumerated set.
func IsValidCategory(category string) bool {
	_, ok := departmentByCategory[category]
	return ok
}

// IsValidDistrict reports whether the district is in the enumerated set.
func IsValidDistrict(district string) bool {
	for _, d := range districts {
		if d == district {
			return true
		}
	}
	return false
}

// ResolveRouting maps a category to its owning department and combines it
// with the district into the office display identifier. Pure lookup with no
// fallback: categories outside the enumerated set are a configuration error.
func ResolveRouting(category, district string) (Routing, error) {
	department, ok := departmentByCategory[category]
	if !ok {
		return Routing{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if !IsValidDistrict(district) {
		return Routing{}, fmt.Errorf("%w: %q", ErrUnknownDistrict, district)
	}

	return Routing{
		Department: department,
		Office:     fmt.Sprintf("%s – %s", district, department),
	}, nil
}
