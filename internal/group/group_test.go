package group

import (
	"testing"
	"time"
)

func TestDescriptorTableComplete(t *testing.T) {
	for _, typ := range Types() {
		d := typ.Descriptor()
		if d.Name == "" {
			t.Errorf("%d: missing name", int(typ))
		}
		if d.PageSize < 1 {
			t.Errorf("%s: page size %d", typ, d.PageSize)
		}
		if d.Granularity == GranNone {
			if d.AreaName == "" || d.FilePrefix == "" {
				t.Errorf("%s: named kind needs area and prefix", typ)
			}
			if !d.PersistWhenEmpty {
				t.Errorf("%s: named kinds persist placeholders", typ)
			}
		} else {
			if d.TypeLetter == 0 {
				t.Errorf("%s: calendar kind needs a type letter", typ)
			}
			if d.PersistWhenEmpty {
				t.Errorf("%s: calendar kinds do not persist placeholders", typ)
			}
		}
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%s): %v", typ, err)
		}
		if got != typ {
			t.Errorf("ParseType(%s) = %v", typ, got)
		}
	}
	if _, err := ParseType("nonsense"); err == nil {
		t.Error("unknown name should fail")
	}
}

func TestNewCalendarTruncatesAndNames(t *testing.T) {
	at := time.Date(2024, 3, 15, 18, 45, 12, 0, time.FixedZone("CET", 3600))

	day := NewCalendar(DayNotes, at)
	if day.Name != "2024-03-15" {
		t.Errorf("day name = %q", day.Name)
	}
	if h := day.Date.Hour(); h != 0 {
		t.Errorf("day date not truncated: hour %d", h)
	}

	month := NewCalendar(MonthNotes, at)
	if month.Name != "2024-03" || month.Date.Day() != 1 {
		t.Errorf("month identity = %+v", month)
	}

	year := NewCalendar(YearNotes, at)
	if year.Name != "2024" || year.Date.Month() != time.January {
		t.Errorf("year identity = %+v", year)
	}
}

func TestIdentityKeyDistinguishesArchive(t *testing.T) {
	live := NewNamed(Goals, "Fitness")
	archived := live.Archived("2023-snapshot")
	if live.Key() == archived.Key() {
		t.Error("archive tag must change the key")
	}
}

func TestIdentityValidate(t *testing.T) {
	if err := NewNamed(TodoLists, "Groceries").Validate(); err != nil {
		t.Errorf("valid named identity: %v", err)
	}
	if err := NewCalendar(DayNotes, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)).Validate(); err != nil {
		t.Errorf("valid calendar identity: %v", err)
	}

	bad := []Identity{
		NewNamed(TodoLists, ""),
		NewNamed(TodoLists, "a/b"),
		NewNamed(TodoLists, `a\b`),
		NewNamed(TodoLists, ".."),
		{Type: DayNotes}, // zero date
		{Type: Type(99), Name: "x"},
	}
	for _, id := range bad {
		if err := id.Validate(); err == nil {
			t.Errorf("identity %+v should fail validation", id)
		}
	}
}

func TestTruncateAndStep(t *testing.T) {
	at := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)
	if d := Truncate(at, GranMonth); d.Day() != 1 || d.Month() != time.March {
		t.Errorf("Truncate month = %s", d)
	}
	if d := Step(at, GranDay, 1); d.Day() != 16 {
		t.Errorf("Step day = %s", d)
	}
	if d := Step(at, GranMonth, -1); d.Month() != time.February {
		t.Errorf("Step month = %s", d)
	}
	if d := Step(at, GranYear, 1); d.Year() != 2025 {
		t.Errorf("Step year = %s", d)
	}
}
