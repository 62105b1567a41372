package scheduling

import "testing"

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestHolidays_FixedDates(t *testing.T) {
	days := Holidays(2031)
	if len(days) != 11 {
		t.Fatalf("expected 11 fixed holidays outside the Easter table, got %d", len(days))
	}
	for _, want := range []string{"2031-01-01", "2031-07-15", "2031-12-26"} {
		if !contains(days, want) {
			t.Errorf("expected %s in holidays", want)
		}
	}
}

func TestHolidays_EasterAndMonday(t *testing.T) {
	days := Holidays(2026)
	if len(days) != 13 {
		t.Fatalf("expected 13 holidays for 2026, got %d", len(days))
	}
	if !contains(days, "2026-04-05") || !contains(days, "2026-04-06") {
		t.Error("expected Easter Sunday and Monday for 2026")
	}
}

func TestHolidays_YearRollover(t *testing.T) {
	// Easter Monday 2027 lands in March, not April.
	days := Holidays(2027)
	if !contains(days, "2027-03-28") || !contains(days, "2027-03-29") {
		t.Error("expected Easter Sunday and Monday for 2027")
	}
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	if len(slots.Morning) != 9 {
		t.Errorf("expected 9 morning slots, got %d", len(slots.Morning))
	}
	if len(slots.Afternoon) != 4 {
		t.Errorf("expected 4 afternoon slots, got %d", len(slots.Afternoon))
	}
	if slots.Morning[0] != "08:30" || slots.Morning[len(slots.Morning)-1] != "12:30" {
		t.Errorf("unexpected morning bounds: %v", slots.Morning)
	}
	if slots.Afternoon[0] != "15:00" || slots.Afternoon[len(slots.Afternoon)-1] != "16:30" {
		t.Errorf("unexpected afternoon bounds: %v", slots.Afternoon)
	}
	if len(slots.All) != len(slots.Morning)+len(slots.Afternoon) {
		t.Error("all slots should be the concatenation of morning and afternoon")
	}
	if contains(slots.All, "13:00") || contains(slots.All, "17:00") {
		t.Error("end times must be excluded")
	}
}
