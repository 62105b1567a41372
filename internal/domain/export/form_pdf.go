package export

import (
	"fmt"

	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/registry"
)

var catheterOptions = []struct {
	Code  string
	Label string
}{
	{"cvd_non_tunnellizzato", "CVC non tunnellizzato (breve termine)"},
	{"cvd_tunnellizzato", "CVC tunnellizzato (lungo termine tipo Groshong, Hickman, Broviac)"},
	{"picc", "CVC medio termine (PICC)"},
	{"port", "PORT (lungo termine)"},
	{"midline", "Midline"},
}

var cvcSiteOptions = []struct {
	Code  string
	Label string
}{
	{"succlavia_dx", "succlavia dx"},
	{"succlavia_sn", "succlavia sn"},
	{"giugulare_dx", "giugulare interna dx"},
	{"giugulare_sn", "giugulare interna sn"},
}

var reasonOptions = []struct {
	Code  string
	Label string
}{
	{"chemioterapia", "chemioterapia"},
	{"difficolta_vene", "difficoltà nel reperire vene"},
	{"terapia_prolungata", "terapia prolungata"},
	{"monitoraggio", "monitoraggio invasivo"},
}

// ImplantFormPDF renders one implant record in the layout of the official
// paper form (Allegato n. 2).
func ImplantFormPDF(rec *forms.ImplantRecord, p *registry.Patient) ([]byte, error) {
	w := newPDF()
	pdf, tr := w.pdf, w.tr

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr("SCHEDA IMPIANTO e GESTIONE ACCESSI VENOSI"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Allegato n. 2", "", 1, "R", false, 0, "")
	pdf.Ln(3)

	var name, taxCode, birthDate, sex string
	if p != nil {
		name = fmt.Sprintf("%s %s", p.LastName, p.FirstName)
		taxCode = derefRaw(p.TaxCode)
		birthDate = derefRaw(p.BirthDate)
		sex = derefRaw(p.Sex)
	}
	w.formRow("Presidio Ospedaliero/Struttura:", derefRaw(rec.ImplantFacility), "Cognome e Nome:", name)
	w.formRow("Codice Fiscale:", taxCode, "Data di nascita:", birthDate)
	w.formRow("Sesso:", fmt.Sprintf("%s M   %s F", mark(sex == "M"), mark(sex == "F")), "Preso in carico dal:", rec.ImplantDate)
	pdf.Ln(5)

	w.sectionHeader("1. SEZIONE CATETERE GIA' PRESENTE")
	w.note("(Da compilare se catetere già presente al momento della presa in carico)")
	w.boldSmall("Tipo di Catetere:")
	for _, opt := range catheterOptions {
		w.option(mark(rec.CatheterType == opt.Code) + " " + opt.Label)
	}
	pdf.Ln(2)
	w.small("Struttura/reparto dove il catetere è stato inserito: " + derefRaw(rec.ReferringWard))
	w.small(fmt.Sprintf("Controllo RX Post-Inserimento effettuato:  %s SI   %s NO", mark(rec.PriorXRayCheck), mark(!rec.PriorXRayCheck)))
	pdf.Ln(4)

	w.sectionHeader("2. SEZIONE IMPIANTO CATETERE")
	w.note("(Da compilare se catetere viene impiantato nella struttura)")
	w.boldSmall("TIPO DI CATETERE:")
	for _, opt := range catheterOptions {
		w.option(mark(rec.CatheterType == opt.Code) + " " + opt.Label)
	}
	pdf.Ln(2)

	w.boldSmall("POSIZIONAMENTO CVC:")
	line := "   "
	cvcSite := false
	for _, opt := range cvcSiteOptions {
		if rec.Site == opt.Code {
			cvcSite = true
		}
		line += "  " + mark(rec.Site == opt.Code) + " " + opt.Label
	}
	w.small(line)
	other := ""
	if rec.Site != "" && !cvcSite {
		other = rec.Site
	}
	w.option(mark(other != "") + " altro specificare: " + other)
	pdf.Ln(2)

	w.boldSmall("POSIZIONAMENTO PICC:")
	arm := derefRaw(rec.Arm)
	w.option(fmt.Sprintf("%s braccio dx    %s braccio sn", mark(arm == "dx"), mark(arm == "sn")))
	vein := derefRaw(rec.Vein)
	w.option(fmt.Sprintf("Vena:  %s Basilica   %s Cefalica   %s Vena brachiale",
		mark(vein == "basilica"), mark(vein == "cefalica"), mark(vein == "brachiale")))
	w.option("Exit-site cm: " + derefRaw(rec.ExitSiteCM))
	w.option(fmt.Sprintf("Tunnelizzazione:  %s SI   %s NO", mark(rec.Tunneled), mark(!rec.Tunneled)))
	pdf.Ln(2)

	assessed := derefRaw(rec.SiteAssessment) != ""
	w.boldSmall(fmt.Sprintf("VALUTAZIONE MIGLIOR SITO DI INSERIMENTO:  %s SI   %s NO", mark(assessed), mark(!assessed)))
	w.boldSmall(fmt.Sprintf("IMPIANTO ECOGUIDATO:  %s SI   %s NO", mark(rec.Ultrasound), mark(!rec.Ultrasound)))
	hygiene := derefRaw(rec.HandHygiene) != ""
	w.boldSmall(fmt.Sprintf("IGIENE DELLE MANI (lavaggio antisettico o frizione alcolica):  %s SI   %s NO", mark(hygiene), mark(!hygiene)))
	w.boldSmall(fmt.Sprintf("UTILIZZO MASSIME PRECAUZIONI DI BARRIERA:  %s SI   %s NO", mark(rec.BarrierPrecautions), mark(!rec.BarrierPrecautions)))
	w.note("(berretto, maschera, camice sterile, guanti sterili, telo sterile)")
	pdf.Ln(1)

	dis := derefRaw(rec.Disinfectant)
	w.boldSmall("DISINFEZIONE DELLA CUTE INTEGRA:")
	w.option(fmt.Sprintf("%s CLOREXIDINA IN SOLUZIONE ALCOLICA 2%%    %s IODIOPOVIDONE",
		mark(dis == "clorexidina_2"), mark(dis == "iodiopovidone")))
	pdf.Ln(1)

	w.boldSmall(fmt.Sprintf("IMPIEGO DI 'SUTURELESS DEVICES':  %s SI   %s NO", mark(rec.SuturelessDevice), mark(!rec.SuturelessDevice)))
	w.boldSmall(fmt.Sprintf("IMPIEGO DI MEDICAZIONE SEMIPERMEABILE TRASPARENTE:  %s SI   %s NO", mark(rec.TransparentDressing), mark(!rec.TransparentDressing)))
	w.boldSmall(fmt.Sprintf("IMPIEGO DI MEDICAZIONE OCCLUSIVA:  %s SI   %s NO", mark(rec.OcclusiveDressing), mark(!rec.OcclusiveDressing)))
	w.boldSmall(fmt.Sprintf("CONTROLLO RX POST-INSERIMENTO:  %s SI   %s NO", mark(rec.XRayCheck), mark(!rec.XRayCheck)))
	w.boldSmall(fmt.Sprintf("CONTROLLO ECG POST-INSERIMENTO:  %s SI   %s NO", mark(rec.ECGCheck), mark(!rec.ECGCheck)))
	pdf.Ln(2)

	mode := derefRaw(rec.Mode)
	w.boldSmall(fmt.Sprintf("MODALITÀ:  %s EMERGENZA - URGENZA    %s ELEZIONE", mark(mode == "emergenza"), mark(mode == "elezione")))
	pdf.Ln(2)

	reason := derefRaw(rec.Reason)
	w.boldSmall("MOTIVAZIONE DI INSERIMENTO CVC:")
	line = "   "
	for _, opt := range reasonOptions {
		line += "  " + mark(reason == opt.Code) + " " + opt.Label
	}
	w.small(line)
	w.option(mark(reason == "altro") + " altro: " + derefRaw(rec.ReasonOther))
	pdf.Ln(5)

	w.formRow("DATA POSIZIONAMENTO:", rec.ImplantDate, "OPERATORE:", derefRaw(rec.Operator))
	w.formRow("FIRMA:", "", "", "")

	if derefRaw(rec.Notes) != "" {
		pdf.Ln(4)
		w.boldSmall("NOTE: " + *rec.Notes)
	}

	return w.bytes()
}

// formRow draws one bordered row of the header and footer boxes, two
// label/value pairs wide.
func (w *pdfWriter) formRow(label1, value1, label2, value2 string) {
	w.pdf.SetFont("Helvetica", "B", 7)
	w.pdf.SetFillColor(226, 232, 240)
	w.pdf.CellFormat(38, 6, w.tr(label1), "1", 0, "L", true, 0, "")
	w.pdf.SetFont("Helvetica", "", 7)
	w.pdf.CellFormat(52, 6, w.tr(value1), "1", 0, "L", false, 0, "")
	w.pdf.SetFont("Helvetica", "B", 7)
	w.pdf.CellFormat(32, 6, w.tr(label2), "1", 0, "L", true, 0, "")
	w.pdf.SetFont("Helvetica", "", 7)
	w.pdf.CellFormat(48, 6, w.tr(value2), "1", 1, "L", false, 0, "")
}

func (w *pdfWriter) sectionHeader(text string) {
	w.pdf.SetFont("Helvetica", "B", 10)
	w.pdf.SetFillColor(74, 85, 104)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.CellFormat(0, 6, w.tr(text), "", 1, "L", true, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(1)
}

func (w *pdfWriter) note(text string) {
	w.pdf.SetFont("Helvetica", "I", 6)
	w.pdf.SetTextColor(128, 128, 128)
	w.pdf.CellFormat(0, 4, w.tr(text), "", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) boldSmall(text string) {
	w.pdf.SetFont("Helvetica", "B", 8)
	w.pdf.MultiCell(0, 4, w.tr(text), "", "L", false)
}

func (w *pdfWriter) small(text string) {
	w.pdf.SetFont("Helvetica", "", 7)
	w.pdf.MultiCell(0, 4, w.tr(text), "", "L", false)
}

// option indents a checkbox line.
func (w *pdfWriter) option(text string) {
	w.pdf.SetFont("Helvetica", "", 7)
	w.pdf.SetX(w.pdf.GetX() + 5)
	w.pdf.MultiCell(0, 4, w.tr(text), "", "L", false)
	w.pdf.SetX(20)
}
