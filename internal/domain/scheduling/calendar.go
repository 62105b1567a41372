package scheduling

import (
	"fmt"
	"time"
)

// Closing days observed by the clinics, including the Palermo patronal
// feast of Santa Rosalia.
var fixedHolidays = []string{
	"01-01", // Capodanno
	"01-06", // Epifania
	"04-25", // Liberazione
	"05-01", // Festa del Lavoro
	"06-02", // Festa della Repubblica
	"07-15", // Santa Rosalia
	"08-15", // Ferragosto
	"11-01", // Ognissanti
	"12-08", // Immacolata
	"12-25", // Natale
	"12-26", // Santo Stefano
}

var easterSundays = map[int]string{
	2026: "2026-04-05",
	2027: "2027-03-28",
	2028: "2028-04-16",
	2029: "2029-04-01",
	2030: "2030-04-21",
}

// Holidays returns the closing days for a year as YYYY-MM-DD dates.
// Easter and Easter Monday are included for the years in the table.
func Holidays(year int) []string {
	out := make([]string, 0, len(fixedHolidays)+2)
	for _, md := range fixedHolidays {
		out = append(out, fmt.Sprintf("%d-%s", year, md))
	}
	if easter, ok := easterSundays[year]; ok {
		out = append(out, easter)
		d, err := time.Parse("2006-01-02", easter)
		if err == nil {
			out = append(out, d.AddDate(0, 0, 1).Format("2006-01-02"))
		}
	}
	return out
}

// SlotSet lists the bookable half-hour slots of a working day.
type SlotSet struct {
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	All       []string `json:"all"`
}

func slotRange(from, to string) []string {
	start, _ := time.Parse("15:04", from)
	end, _ := time.Parse("15:04", to)
	var out []string
	for t := start; t.Before(end); t = t.Add(30 * time.Minute) {
		out = append(out, t.Format("15:04"))
	}
	return out
}

// TimeSlots returns the bookable slots: mornings 08:30 to 13:00 and
// afternoons 15:00 to 17:00, end excluded.
func TimeSlots() SlotSet {
	morning := slotRange("08:30", "13:00")
	afternoon := slotRange("15:00", "17:00")
	all := make([]string, 0, len(morning)+len(afternoon))
	all = append(all, morning...)
	all = append(all, afternoon...)
	return SlotSet{Morning: morning, Afternoon: afternoon, All: all}
}
