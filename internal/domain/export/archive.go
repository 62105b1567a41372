package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/registry"
)

// PatientArchiveZIP bundles the folder PDF with the raw records as JSON.
// Attachments are downloaded one by one from the application and are not
// part of the archive.
func PatientArchiveZIP(p *registry.Patient, dressings []*forms.DressingRecord, implants []*forms.ImplantRecord, logs []*forms.MonthlyLog) ([]byte, error) {
	pdfData, err := PatientSummaryPDF(p, dressings, implants, logs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name string, data []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		_, err = f.Write(data)
		return err
	}
	writeJSON := func(name string, v interface{}) error {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		return write(name, data)
	}

	pdfName := fmt.Sprintf("cartella_clinica_%s_%s.pdf", p.LastName, p.FirstName)
	if err := write(pdfName, pdfData); err != nil {
		return nil, err
	}
	if err := writeJSON("dati_paziente.json", p); err != nil {
		return nil, err
	}
	if len(dressings) > 0 {
		if err := writeJSON("schede_medicazione_med.json", dressings); err != nil {
			return nil, err
		}
	}
	if complete := completeImplants(implants); len(complete) > 0 {
		if err := writeJSON("schede_impianto_picc.json", complete); err != nil {
			return nil, err
		}
	}
	if len(logs) > 0 {
		if err := writeJSON("schede_gestione_picc.json", logs); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}
