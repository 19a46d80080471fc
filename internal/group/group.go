// Package group defines the note group taxonomy: the group types, the
// per-type descriptor table that drives file naming and persistence policy,
// and the identity that addresses a single group on disk.
package group

import (
	"fmt"
	"time"
)

// Type enumerates the kinds of note groups.
type Type int

const (
	DayNotes Type = iota
	MonthNotes
	YearNotes
	Goals
	Events
	TodoLists
	Logs
	Milestones
	SearchResults
)

// Granularity is the calendar resolution of a group type. Named kinds
// have GranNone.
type Granularity int

const (
	GranNone Granularity = iota
	GranDay
	GranMonth
	GranYear
)

// Descriptor captures everything type-specific about a group kind so that
// the codec, locator, store, and scan never branch on the type themselves.
type Descriptor struct {
	Name             string      // stable identifier, e.g. "day_notes"
	AreaName         string      // subdirectory for named kinds; empty for calendar kinds
	FilePrefix       string      // filename prefix for named kinds
	TypeLetter       byte        // leading filename letter for calendar kinds
	Granularity      Granularity // GranNone for named kinds
	PersistWhenEmpty bool        // write a placeholder file for an empty list
	PageSize         int         // window size for the paged collection
}

var descriptors = [...]Descriptor{
	DayNotes:      {Name: "day_notes", TypeLetter: 'D', Granularity: GranDay, PageSize: 40},
	MonthNotes:    {Name: "month_notes", TypeLetter: 'M', Granularity: GranMonth, PageSize: 40},
	YearNotes:     {Name: "year_notes", TypeLetter: 'Y', Granularity: GranYear, PageSize: 40},
	Goals:         {Name: "goals", AreaName: "Goals", FilePrefix: "goal", PersistWhenEmpty: true, PageSize: 20},
	Events:        {Name: "events", AreaName: "Events", FilePrefix: "event", PersistWhenEmpty: true, PageSize: 25},
	TodoLists:     {Name: "todo_lists", AreaName: "TodoLists", FilePrefix: "todo", PersistWhenEmpty: true, PageSize: 40},
	Logs:          {Name: "logs", AreaName: "Logs", FilePrefix: "log", PersistWhenEmpty: true, PageSize: 40},
	Milestones:    {Name: "milestones", AreaName: "Milestones", FilePrefix: "mile", PersistWhenEmpty: true, PageSize: 20},
	SearchResults: {Name: "search_results", AreaName: "SearchResults", FilePrefix: "search", PersistWhenEmpty: true, PageSize: 40},
}

// Descriptor returns the descriptor for the type. Unknown types yield the
// zero descriptor.
func (t Type) Descriptor() Descriptor {
	if t < 0 || int(t) >= len(descriptors) {
		return Descriptor{}
	}
	return descriptors[t]
}

// Calendar reports whether the type is keyed by a date.
func (t Type) Calendar() bool { return t.Descriptor().Granularity != GranNone }

// String returns the stable identifier of the type.
func (t Type) String() string {
	d := t.Descriptor()
	if d.Name == "" {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return d.Name
}

// ParseType resolves a stable identifier back to a Type.
func ParseType(s string) (Type, error) {
	for i, d := range descriptors {
		if d.Name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown group type %q", s)
}

// Types returns all defined group types.
func Types() []Type {
	out := make([]Type, len(descriptors))
	for i := range descriptors {
		out[i] = Type(i)
	}
	return out
}

// Truncate drops the components of t below the given granularity.
// GranNone passes t through unchanged.
func Truncate(t time.Time, g Granularity) time.Time {
	switch g {
	case GranDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case GranMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// Step moves t by n units of the given granularity.
func Step(t time.Time, g Granularity, n int) time.Time {
	switch g {
	case GranDay:
		return t.AddDate(0, 0, n)
	case GranMonth:
		return t.AddDate(0, n, 0)
	case GranYear:
		return t.AddDate(n, 0, 0)
	default:
		return t
	}
}
