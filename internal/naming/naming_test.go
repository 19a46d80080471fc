package naming

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/group"
)

var saveStamp = time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

func TestSavePathCalendar(t *testing.T) {
	cases := []struct {
		typ  group.Type
		want string
	}{
		{group.DayNotes, "2024/D0315_20240315103045.json"},
		{group.MonthNotes, "2024/M03_20240315103045.json"},
		{group.YearNotes, "2024/Y_20240315103045.json"},
	}
	for _, tc := range cases {
		id := group.NewCalendar(tc.typ, saveStamp)
		if got := SavePath(id, saveStamp); got != tc.want {
			t.Errorf("SavePath(%s) = %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestSavePathNamed(t *testing.T) {
	id := group.NewNamed(group.TodoLists, "Groceries")
	if got := SavePath(id, saveStamp); got != "TodoLists/todo_Groceries.json" {
		t.Errorf("SavePath = %q", got)
	}
}

func TestSavePathArchived(t *testing.T) {
	id := group.NewNamed(group.Goals, "Fitness").Archived("2023-snapshot")
	want := "Archives/2023-snapshot/Goals/goal_Fitness.json"
	if got := SavePath(id, saveStamp); got != want {
		t.Errorf("SavePath = %q, want %q", got, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(987, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	types := []group.Type{group.DayNotes, group.MonthNotes, group.YearNotes}
	for _, d := range dates {
		for _, typ := range types {
			id := group.NewCalendar(typ, d)
			dec, err := Decode(SavePath(id, saveStamp))
			if err != nil {
				t.Fatalf("Decode(%s, %s): %v", typ, d, err)
			}
			want := group.Truncate(d, typ.Descriptor().Granularity)
			if !dec.Date.Equal(want) {
				t.Errorf("%s %s: decoded %s, want %s", typ, d, dec.Date, want)
			}
			if dec.Letter != typ.Descriptor().TypeLetter {
				t.Errorf("%s: letter = %c", typ, dec.Letter)
			}
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"D0315_20240315103045.json",      // no year directory
		"20x4/D0315_20240315103045.json", // non-numeric year
		"124/D0315_20240315103045.json",  // 3-digit year
		"2024/X0315_20240315103045.json", // unknown letter
		"2024/D03_20240315103045.json",   // day token too short
		"2024/D031_20240315103045.json",  // odd length
		"2024/D1345_20240315103045.json", // month out of range
		"2024/D0340_20240315103045.json", // day out of range
		"2024/Daabb_20240315103045.json", // non-numeric tokens
		"2024/D0315.json",                // no underscore
		"2024/_0315.json",                // underscore first
		"2024/todo_Groceries.json",       // named-kind file in a year dir
	}
	for _, path := range cases {
		if _, err := Decode(path); !errors.Is(err, apperr.ErrMalformedFilename) {
			t.Errorf("Decode(%q) = %v, want ErrMalformedFilename", path, err)
		}
	}
}

func TestMatches(t *testing.T) {
	day := group.NewCalendar(group.DayNotes, saveStamp)
	if !Matches(day, "D0315_20240315103045.json") {
		t.Error("stamped day file should match")
	}
	if Matches(day, "D0316_20240315103045.json") {
		t.Error("different day should not match")
	}
	if Matches(day, "D0315_20240315103045.bak") {
		t.Error("non-json sibling should not match")
	}

	todo := group.NewNamed(group.TodoLists, "Groceries")
	if !Matches(todo, "todo_Groceries.json") {
		t.Error("exact named file should match")
	}
	if Matches(todo, "todo_GroceriesOld.json") {
		t.Error("longer name sharing the prefix should not match")
	}
}

func TestIdentify(t *testing.T) {
	id, err := Identify("2024/D0315_20240315103045.json")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if id.Type != group.DayNotes || id.Name != "2024-03-15" {
		t.Errorf("identity = %+v", id)
	}

	id, err = Identify("TodoLists/todo_Groceries.json")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if id.Type != group.TodoLists || id.Name != "Groceries" {
		t.Errorf("identity = %+v", id)
	}

	id, err = Identify("Archives/2023-snapshot/Goals/goal_Fitness.json")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if id.Type != group.Goals || id.Name != "Fitness" || id.ArchiveTag != "2023-snapshot" {
		t.Errorf("identity = %+v", id)
	}

	for _, bad := range []string{"loose.json", "Nowhere/x_y.json", "2024/deep/D0315_1.json"} {
		if _, err := Identify(bad); err == nil {
			t.Errorf("Identify(%q) should fail", bad)
		}
	}
}
