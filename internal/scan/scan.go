// Package scan searches the calendar area for the nearest earlier or later
// date that has persisted, non-empty data. Calendar navigation must always
// make progress, so a fruitless scan falls back to a sentinel one unit away.
package scan

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/starford/daybook/internal/group"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/naming"
	"github.com/starford/daybook/internal/storage"
)

// Direction of a scan relative to the starting date.
type Direction int

const (
	Forward Direction = iota + 1
	Backward
)

// Scanner walks year directories looking for adjacent data dates.
type Scanner struct {
	fs  storage.Provider
	log *slog.Logger
}

// New creates a scanner over the given provider.
func New(fs storage.Provider, log *slog.Logger) *Scanner {
	return &Scanner{fs: fs, log: log}
}

// AdjacentDataDate returns the nearest date in the given direction, at the
// given granularity, whose file holds at least one record. Empty or
// undecodable files are skipped; malformed year directories are skipped.
// When nothing qualifies, from ± one unit is returned.
func (s *Scanner) AdjacentDataDate(from time.Time, g group.Granularity, dir Direction) time.Time {
	from = group.Truncate(from, g)
	for _, year := range s.candidateYears(from.Year(), dir) {
		if d, ok := s.scanYear(year, from, g, dir); ok {
			return d
		}
	}
	step := 1
	if dir == Backward {
		step = -1
	}
	return group.Step(from, g, step)
}

// candidateYears lists the 4-digit year directories on the right side of
// fromYear, ordered in scan direction. The starting year itself is
// included: adjacent data often lives in it.
func (s *Scanner) candidateYears(fromYear int, dir Direction) []int {
	entries, err := s.fs.ListDir("")
	if err != nil {
		s.log.Warn("scan: list data root", slog.String("error", err.Error()))
		return nil
	}
	var years []int
	for _, e := range entries {
		if !e.Dir || len(e.Name) != 4 {
			continue
		}
		y, err := strconv.Atoi(e.Name)
		if err != nil || y < 1 {
			continue
		}
		if (dir == Forward && y < fromYear) || (dir == Backward && y > fromYear) {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	if dir == Backward {
		for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
			years[i], years[j] = years[j], years[i]
		}
	}
	return years
}

// scanYear walks one year directory in scan order and returns the first
// qualifying date.
func (s *Scanner) scanYear(year int, from time.Time, g group.Granularity, dir Direction) (time.Time, bool) {
	yearDir := strconv.Itoa(year)
	for len(yearDir) < 4 {
		yearDir = "0" + yearDir
	}
	entries, err := s.fs.ListDir(yearDir)
	if err != nil {
		return time.Time{}, false
	}

	letter := group.DayNotes.Descriptor().TypeLetter
	switch g {
	case group.GranMonth:
		letter = group.MonthNotes.Descriptor().TypeLetter
	case group.GranYear:
		letter = group.YearNotes.Descriptor().TypeLetter
	}
	stemLen := naming.StemLen(g)

	var names []string
	for _, e := range entries {
		if e.Dir {
			continue
		}
		n := e.Name
		if len(n) <= stemLen || n[0] != letter || n[stemLen] != '_' || !strings.HasSuffix(n, naming.Ext) {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	if dir == Backward {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}

	for _, n := range names {
		rel := filepath.Join(yearDir, n)
		dec, err := naming.Decode(rel)
		if err != nil {
			continue
		}
		candidate := group.Truncate(dec.Date, g)
		if dir == Forward && !candidate.After(from) {
			continue
		}
		if dir == Backward && !candidate.Before(from) {
			continue
		}
		if !s.hasRecords(rel) {
			continue
		}
		return candidate, true
	}
	return time.Time{}, false
}

// hasRecords reports whether the file holds at least one record. A file
// that exists but decodes to zero records is a placeholder and does not
// count as data.
func (s *Scanner) hasRecords(rel string) bool {
	data, err := s.fs.ReadFile(rel)
	if err != nil {
		s.log.Warn("scan: read candidate", slog.String("path", rel), slog.String("error", err.Error()))
		return false
	}
	payload, err := models.DecodePayload(data)
	if err != nil {
		return false
	}
	return len(payload.Records) > 0
}
