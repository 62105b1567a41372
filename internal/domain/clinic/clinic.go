// Package clinic holds the static clinic registry shared across domains.
package clinic

// Clinic identifiers. These are stable keys used in tokens, rows and URLs.
const (
	PTACentro     = "pta_centro"
	VillaGinestre = "villa_ginestre"
)

// Care tracks offered by the clinics. CarePICCMED marks patients followed
// on both tracks and is only valid where both are offered.
const (
	CarePICC    = "PICC"
	CareMED     = "MED"
	CarePICCMED = "PICC_MED"
)

// Clinic describes a single outpatient site.
type Clinic struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CareTypes []string `json:"careTypes"`
}

var registry = []Clinic{
	{ID: PTACentro, Name: "PTA Centro", CareTypes: []string{CarePICC, CareMED}},
	{ID: VillaGinestre, Name: "Villa delle Ginestre", CareTypes: []string{CarePICC}},
}

// All returns the known clinics in registration order.
func All() []Clinic {
	out := make([]Clinic, len(registry))
	copy(out, registry)
	return out
}

// Valid reports whether id names a known clinic.
func Valid(id string) bool {
	for _, c := range registry {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ValidCareType reports whether t is a known care track assignment.
func ValidCareType(t string) bool {
	return t == CarePICC || t == CareMED || t == CarePICCMED
}

// Supports reports whether the clinic offers the given care track.
// Villa delle Ginestre runs the vascular access track only, so a combined
// assignment needs a clinic carrying both tracks.
func Supports(id, careType string) bool {
	for _, c := range registry {
		if c.ID != id {
			continue
		}
		if careType == CarePICCMED {
			return len(c.CareTypes) == 2
		}
		for _, t := range c.CareTypes {
			if t == careType {
				return true
			}
		}
	}
	return false
}
