package stats

// Period aggregates the booked visits of one clinic over a year or a
// single month of it.
type Period struct {
	Year           int                     `json:"year"`
	Month          int                     `json:"month,omitempty"`
	Clinic         string                  `json:"clinic"`
	CareType       string                  `json:"careType,omitempty"`
	TotalVisits    int                     `json:"totalVisits"`
	UniquePatients int                     `json:"uniquePatients"`
	Procedures     map[string]int          `json:"procedures"`
	MonthlyDetail  map[string]MonthlyStats `json:"monthlyDetail"`
}

// MonthlyStats is one YYYY-MM bucket inside a Period.
type MonthlyStats struct {
	Visits         int            `json:"visits"`
	UniquePatients int            `json:"uniquePatients"`
	Procedures     map[string]int `json:"procedures"`
}

// Comparison holds two periods side by side with period2 minus period1.
type Comparison struct {
	Period1 *Period `json:"period1"`
	Period2 *Period `json:"period2"`
	Diff    Diff    `json:"diff"`
}

type Diff struct {
	Visits         int            `json:"visits"`
	UniquePatients int            `json:"uniquePatients"`
	Procedures     map[string]int `json:"procedures"`
}

// ImplantReport counts vascular access placements by catheter type.
// TotalImplants covers every record placed in the window, while the
// breakdowns skip records whose patient was since removed.
type ImplantReport struct {
	TotalImplants int                       `json:"totalImplants"`
	ByType        map[string]int            `json:"byType"`
	TypeLabels    map[string]string         `json:"typeLabels"`
	MonthlyDetail map[string]map[string]int `json:"monthlyDetail"`
}

// catheterTypeLabels maps stored catheter type codes to display names.
var catheterTypeLabels = map[string]string{
	"picc":                  "PICC",
	"picc_port":             "PICC/Port",
	"midline":               "Midline",
	"cvd_non_tunnellizzato": "CVC non tunnellizzato",
	"cvd_tunnellizzato":     "CVC tunnellizzato",
	"port":                  "PORT",
}
