package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/registry"
)

// logActivities are the rows of the monthly vascular access log tables, in
// the order of the paper form.
var logActivities = []struct {
	Key   string
	Label string
}{
	{"data_giorno_mese", "Data (giorno/mese)"},
	{"uso_precauzioni_barriera", "Uso massime precauzioni barriera"},
	{"lavaggio_mani", "Lavaggio mani"},
	{"guanti_non_sterili", "Uso guanti non sterili"},
	{"cambio_guanti_sterili", "Cambio guanti con guanti sterili"},
	{"rimozione_medicazione_sutureless", "Rimozione medicazione e sostituzione sutureless"},
	{"rimozione_medicazione_straordinaria", "Rimozione medicazione ord/straordinaria"},
	{"ispezione_sito", "Ispezione del sito"},
	{"sito_dolente", "Sito dolente"},
	{"edema_arrossamento", "Presenza di edema/arrossamento"},
	{"disinfezione_sito", "Disinfezione del sito"},
	{"exit_site_cm", "Exit-site cm"},
	{"fissaggio_sutureless", "Fissaggio catetere con sutureless device"},
	{"medicazione_trasparente", "Medicazione semipermeabile trasparente"},
	{"lavaggio_fisiologica", "Lavaggio con fisiologica 10cc/20cc"},
	{"disinfezione_clorexidina", "Disinfezione Clorexidina 2%"},
	{"difficolta_aspirazione", "Difficoltà di aspirazione"},
	{"difficolta_iniezione", "Difficoltà iniezione"},
	{"medicazione_clorexidina_prolungato", "Medicazione Clorexidina rilascio prol."},
	{"port_protector", "Utilizzo Port Protector"},
	{"lock_eparina", "Lock eparina per lavaggi"},
	{"sostituzione_set", "Sostituzione set infusione"},
	{"ore_sostituzione_set", "Ore da precedente sostituzione set"},
	{"febbre", "Febbre"},
	{"emocoltura", "Prelievo emocoltura"},
	{"emocoltura_positiva", "Emocoltura positiva per CVC"},
	{"trasferimento", "Trasferimento altra struttura"},
	{"rimozione_cvc", "Rimozione CVC"},
	{"sigla_operatore", "SIGLA OPERATORE"},
}

// maxLogColumns caps the day columns of one log table so rows stay legible.
const maxLogColumns = 10

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func derefRaw(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Sì"
	}
	return "No"
}

// mark renders a checkbox state in plain text, the paper form's filled and
// empty squares are not available in the core PDF fonts.
func mark(checked bool) string {
	if checked {
		return "[X]"
	}
	return "[ ]"
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDF() *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	return &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (w *pdfWriter) title(text string) {
	w.pdf.SetFont("Helvetica", "B", 18)
	w.pdf.CellFormat(0, 10, w.tr(text), "", 1, "C", false, 0, "")
	w.pdf.Ln(8)
}

func (w *pdfWriter) heading(text string) {
	w.pdf.SetFont("Helvetica", "B", 14)
	w.pdf.SetTextColor(30, 64, 175)
	w.pdf.CellFormat(0, 8, w.tr(text), "", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(2)
}

func (w *pdfWriter) field(label, value string) {
	w.pdf.SetFont("Helvetica", "B", 10)
	w.pdf.CellFormat(40, 6, w.tr(label), "", 0, "L", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.MultiCell(0, 6, w.tr(value), "", "L", false)
}

func (w *pdfWriter) line(text string) {
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
}

func (w *pdfWriter) boldLine(text string) {
	w.pdf.SetFont("Helvetica", "B", 10)
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
}

func (w *pdfWriter) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PatientSummaryPDF renders the clinical folder of one patient. Photos and
// attachments stay in the application, simplified implant records are left
// out as well.
func PatientSummaryPDF(p *registry.Patient, dressings []*forms.DressingRecord, implants []*forms.ImplantRecord, logs []*forms.MonthlyLog) ([]byte, error) {
	w := newPDF()
	w.title(fmt.Sprintf("Cartella Clinica - %s %s", p.LastName, p.FirstName))

	w.heading("Dati Anagrafici")
	w.field("Nome:", p.FirstName)
	w.field("Cognome:", p.LastName)
	w.field("Tipo:", p.CareType)
	w.field("Codice Fiscale:", deref(p.TaxCode))
	w.field("Data di Nascita:", deref(p.BirthDate))
	w.field("Sesso:", deref(p.Sex))
	w.field("Telefono:", deref(p.Phone))
	w.field("Email:", deref(p.Email))
	w.field("Medico di Base:", deref(p.FamilyDoctor))
	w.field("Stato:", p.Status)
	w.pdf.Ln(6)

	if derefRaw(p.History) != "" || derefRaw(p.CurrentTherapy) != "" || derefRaw(p.Allergies) != "" {
		w.heading("Anamnesi")
		if derefRaw(p.History) != "" {
			w.field("Anamnesi:", *p.History)
		}
		if derefRaw(p.CurrentTherapy) != "" {
			w.field("Terapia in Atto:", *p.CurrentTherapy)
		}
		if derefRaw(p.Allergies) != "" {
			w.field("Allergie:", *p.Allergies)
		}
		w.pdf.Ln(6)
	}

	if len(dressings) > 0 {
		w.heading("Schede Medicazione MED")
		for i, d := range dressings {
			w.boldLine(fmt.Sprintf("Medicazione #%d - Data: %s", i+1, d.RecordedAt))
			w.line("Fondo: " + joinOrDash(d.WoundBed))
			w.line("Margini: " + joinOrDash(d.Margins))
			w.line("Cute perilesionale: " + joinOrDash(d.PerilesionalSkin))
			w.line("Essudato Quantità: " + deref(d.ExudateAmount))
			w.line("Essudato Tipo: " + joinOrDash(d.ExudateType))
			if d.Treatment != "" {
				w.line("Medicazione: " + d.Treatment)
			}
			if derefRaw(d.NextChange) != "" {
				w.line("Prossimo Cambio: " + *d.NextChange)
			}
			if derefRaw(d.Signature) != "" {
				w.line("Firma Operatore: " + *d.Signature)
			}
			w.pdf.Ln(4)
		}
		w.pdf.Ln(3)
	}

	complete := completeImplants(implants)
	if len(complete) > 0 {
		w.heading("Schede Impianto PICC (Complete)")
		for i, im := range complete {
			w.boldLine(fmt.Sprintf("Impianto #%d - Data: %s", i+1, im.ImplantDate))
			w.line("Presidio: " + deref(im.ImplantFacility))
			w.line("Tipo Catetere: " + orDash(im.CatheterType))
			w.line("Sede: " + orDash(im.Site))
			w.line("Braccio: " + armLabel(im.Arm))
			w.line("Vena: " + deref(im.Vein))
			w.line("Exit-site: " + deref(im.ExitSiteCM) + " cm")
			w.line("Tunnelizzazione: " + yesNo(im.Tunneled))
			w.line("Ecoguidato: " + yesNo(im.Ultrasound))
			w.line("Precauzioni Barriera: " + yesNo(im.BarrierPrecautions))
			w.line("Disinfezione: " + deref(im.Disinfectant))
			w.line("Sutureless Device: " + yesNo(im.SuturelessDevice))
			w.line("Medicazione Trasparente: " + yesNo(im.TransparentDressing))
			w.line("Controllo RX: " + yesNo(im.XRayCheck))
			w.line("Controllo ECG: " + yesNo(im.ECGCheck))
			w.line("Modalità: " + deref(im.Mode))
			w.line("Motivazione: " + deref(im.Reason))
			w.line("Operatore: " + deref(im.Operator))
			if derefRaw(im.Notes) != "" {
				w.line("Note: " + *im.Notes)
			}
			w.pdf.Ln(4)
		}
		w.pdf.Ln(3)
	}

	if len(logs) > 0 {
		w.heading("Schede Gestione PICC (Accessi Venosi)")
		for _, lg := range logs {
			w.boldLine("Mese: " + lg.Month)
			if len(lg.Days) == 0 {
				w.line("Nessuna medicazione registrata per questo mese.")
				w.pdf.Ln(4)
				continue
			}
			dates := make([]string, 0, len(lg.Days))
			for d := range lg.Days {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			for start := 0; start < len(dates); start += maxLogColumns {
				end := start + maxLogColumns
				if end > len(dates) {
					end = len(dates)
				}
				w.logTable(lg, dates[start:end])
			}
			if derefRaw(lg.Notes) != "" {
				w.boldLine("Note: " + *lg.Notes)
			}
			w.pdf.Ln(4)
		}
	}

	return w.bytes()
}

// logTable renders one chunk of day columns with the activity rows of the
// paper form. Column headers show the day of month only.
func (w *pdfWriter) logTable(lg *forms.MonthlyLog, dates []string) {
	const labelWidth, dayWidth = 70.0, 10.0

	w.pdf.SetFont("Helvetica", "B", 6)
	w.pdf.SetFillColor(22, 101, 52)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.CellFormat(labelWidth, 5, w.tr("Attività"), "1", 0, "L", true, 0, "")
	for _, d := range dates {
		parts := strings.Split(d, "-")
		w.pdf.CellFormat(dayWidth, 5, parts[len(parts)-1], "1", 0, "C", true, 0, "")
	}
	w.pdf.Ln(-1)
	w.pdf.SetTextColor(0, 0, 0)

	w.pdf.SetFont("Helvetica", "", 6)
	for _, act := range logActivities {
		w.pdf.CellFormat(labelWidth, 4, w.tr(act.Label), "1", 0, "L", false, 0, "")
		for _, d := range dates {
			val := "-"
			if entries, ok := lg.Days[d]; ok {
				if raw, ok := entries[act.Key]; ok && raw != nil {
					if s := fmt.Sprintf("%v", raw); s != "" {
						val = s
					}
				}
			}
			w.pdf.CellFormat(dayWidth, 4, w.tr(val), "1", 0, "C", false, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.pdf.Ln(4)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func armLabel(arm *string) string {
	switch derefRaw(arm) {
	case "dx":
		return "Destro"
	case "sn":
		return "Sinistro"
	default:
		return "-"
	}
}

// completeImplants drops simplified bedside records, only the official form
// variant belongs in the folder.
func completeImplants(implants []*forms.ImplantRecord) []*forms.ImplantRecord {
	out := make([]*forms.ImplantRecord, 0, len(implants))
	for _, im := range implants {
		if im.Variant != forms.VariantSimplified {
			out = append(out, im)
		}
	}
	return out
}
