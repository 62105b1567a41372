package templates

import "github.com/ambulatorio/api/internal/domain/clinic"

// Document is a downloadable blank form or brochure handed to patients.
type Document struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	FileType string `json:"fileType"`
	URL      string `json:"url"`
}

// catalog is the fixed set of printable documents. Files live in the static
// assets volume mounted next to the API.
var catalog = []Document{
	{ID: "consent_med", Name: "Consenso Informato MED", Category: clinic.CareMED, FileType: "pdf", URL: "/assets/documents/consenso_informato_med.pdf"},
	{ID: "scheda_mmg", Name: "Scheda MMG", Category: clinic.CareMED, FileType: "pdf", URL: "/assets/documents/scheda_mmg.pdf"},
	{ID: "anagrafica_med", Name: "Anagrafica/Anamnesi MED", Category: clinic.CareMED, FileType: "pdf", URL: "/assets/documents/anagrafica_med.pdf"},
	{ID: "scheda_medicazione_med", Name: "Scheda Medicazione MED", Category: clinic.CareMED, FileType: "pdf", URL: "/assets/documents/scheda_medicazione_med.pdf"},
	{ID: "consent_picc_1", Name: "Consenso Generico Processi Clinico-Assistenziali", Category: clinic.CarePICC, FileType: "pdf", URL: "/assets/documents/consenso_generico_processi_clinici.pdf"},
	{ID: "consent_picc_2", Name: "Consenso Informato PICC e Midline", Category: clinic.CarePICC, FileType: "pdf", URL: "/assets/documents/consenso_informato_picc_midline.pdf"},
	{ID: "brochure_picc_port", Name: "Brochure PICC Port", Category: clinic.CarePICC, FileType: "pdf", URL: "/assets/documents/brochure_picc_port.pdf"},
	{ID: "brochure_picc", Name: "Brochure PICC", Category: clinic.CarePICC, FileType: "pdf", URL: "/assets/documents/brochure_picc.pdf"},
	{ID: "scheda_impianto_picc", Name: "Scheda Impianto e Gestione AV", Category: clinic.CarePICC, FileType: "pdf", URL: "/assets/documents/scheda_impianto_gestione_av.pdf"},
	{ID: "specifiche_impianto_picc", Name: "Specifiche Impianto", Category: clinic.CarePICC, FileType: "pdf", URL: "/assets/documents/specifiche_impianto.pdf"},
}

// List returns the documents visible at a clinic. Clinics without a wound
// care track only see the vascular access documents. An optional category
// narrows the result further.
func List(clinicID, category string) []Document {
	out := make([]Document, 0, len(catalog))
	for _, d := range catalog {
		if !clinic.Supports(clinicID, d.Category) {
			continue
		}
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	return out
}
