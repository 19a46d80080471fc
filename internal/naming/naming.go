// Package naming maps group identities to on-disk paths and back. All
// paths are relative to the user data root; the storage layer anchors them.
//
// Calendar kinds live under a 4-digit year directory and use a positional
// stamp: a type letter at offset 0, a zero-padded month at offsets 1-2 and
// day at offsets 3-4 where the granularity calls for them, an underscore,
// and a 14-digit save timestamp. Named kinds live under their area
// directory as {prefix}_{name}.json with no timestamp. The positional
// layout is a legacy format; the exact offsets are load-bearing.
package naming

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/group"
)

// TimestampLayout renders the 14-digit save-time suffix of calendar files.
const TimestampLayout = "20060102150405"

// Ext is the data file extension, dot included.
const Ext = ".json"

// ArchivesDirName is the directory that holds archived snapshots.
const ArchivesDirName = "Archives"

// AreaDir returns the directory that holds the identity's data file:
// the year directory for calendar kinds, the area directory for named
// kinds, either one re-rooted under Archives/{tag} when the identity is
// archived.
func AreaDir(id group.Identity) string {
	d := id.Type.Descriptor()
	var tail string
	if d.Granularity != group.GranNone {
		tail = fmt.Sprintf("%04d", id.Date.Year())
	} else {
		tail = d.AreaName
	}
	if id.ArchiveTag != "" {
		return filepath.Join(ArchivesDirName, id.ArchiveTag, tail)
	}
	return tail
}

// FileStem returns the filename up to (not including) the timestamp
// separator: the positional date token for calendar kinds, or
// {prefix}_{name} for named kinds.
func FileStem(id group.Identity) string {
	d := id.Type.Descriptor()
	switch d.Granularity {
	case group.GranDay:
		return fmt.Sprintf("%c%02d%02d", d.TypeLetter, int(id.Date.Month()), id.Date.Day())
	case group.GranMonth:
		return fmt.Sprintf("%c%02d", d.TypeLetter, int(id.Date.Month()))
	case group.GranYear:
		return string(d.TypeLetter)
	default:
		return d.FilePrefix + "_" + id.Name
	}
}

// SavePath returns the relative path a fresh save of the identity should
// write. Calendar kinds embed now as a 14-digit suffix, so no two saves
// of the same group ever target the same path; named kinds have a single
// stable path.
func SavePath(id group.Identity, now time.Time) string {
	name := FileStem(id)
	if id.Type.Calendar() {
		name += "_" + now.Format(TimestampLayout)
	}
	return filepath.Join(AreaDir(id), name+Ext)
}

// Matches reports whether an entry name in the identity's area directory
// is a data file for that identity. Calendar kinds match on the stamped
// prefix, named kinds on the exact filename; anything without the data
// extension is excluded.
func Matches(id group.Identity, entryName string) bool {
	if !strings.HasSuffix(entryName, Ext) {
		return false
	}
	stem := FileStem(id)
	if id.Type.Calendar() {
		return strings.HasPrefix(entryName, stem+"_")
	}
	return entryName == stem+Ext
}

// Decoded is the result of parsing a calendar data filename.
type Decoded struct {
	Date        time.Time
	Letter      byte
	Granularity group.Granularity
}

// Decode parses a calendar data file path by fixed character offsets,
// trusting the parent directory name as the 4-digit year. Any deviation
// (short name, missing underscore, unknown letter, bad integer, value out
// of range) yields apperr.ErrMalformedFilename, never a panic.
func Decode(path string) (Decoded, error) {
	base := filepath.Base(path)
	year, err := parseYearDir(filepath.Base(filepath.Dir(path)))
	if err != nil {
		return Decoded{}, err
	}

	us := strings.IndexByte(base, '_')
	if us < 1 {
		return Decoded{}, fmt.Errorf("%w: no underscore in %q", apperr.ErrMalformedFilename, base)
	}
	stem := base[:us]

	var g group.Granularity
	var wantLen int
	switch stem[0] {
	case 'D':
		g, wantLen = group.GranDay, 5
	case 'M':
		g, wantLen = group.GranMonth, 3
	case 'Y':
		g, wantLen = group.GranYear, 1
	default:
		return Decoded{}, fmt.Errorf("%w: unrecognized letter in %q", apperr.ErrMalformedFilename, base)
	}
	if len(stem) != wantLen {
		return Decoded{}, fmt.Errorf("%w: token %q has wrong length for %c", apperr.ErrMalformedFilename, stem, stem[0])
	}

	month, day := 1, 1
	if g == group.GranDay || g == group.GranMonth {
		month, err = parseToken(stem[1:3], 1, 12)
		if err != nil {
			return Decoded{}, fmt.Errorf("%w: month in %q", apperr.ErrMalformedFilename, stem)
		}
	}
	if g == group.GranDay {
		day, err = parseToken(stem[3:5], 1, 31)
		if err != nil {
			return Decoded{}, fmt.Errorf("%w: day in %q", apperr.ErrMalformedFilename, stem)
		}
	}

	return Decoded{
		Date:        time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Letter:      stem[0],
		Granularity: g,
	}, nil
}

// StemLen returns the positional token length for a granularity. The scan
// uses it to filter directory entries before decoding.
func StemLen(g group.Granularity) int {
	switch g {
	case group.GranDay:
		return 5
	case group.GranMonth:
		return 3
	case group.GranYear:
		return 1
	default:
		return 0
	}
}

// Identify resolves a relative data file path back to a group identity.
// It recognizes the Archives/{tag} prefix, year directories with calendar
// stamps, and named-kind area directories. Paths that fit neither layout
// yield apperr.ErrMalformedFilename.
func Identify(rel string) (group.Identity, error) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	var tag string
	if len(parts) >= 3 && parts[0] == ArchivesDirName {
		tag = parts[1]
		parts = parts[2:]
	}
	if len(parts) != 2 {
		return group.Identity{}, fmt.Errorf("%w: unexpected depth in %q", apperr.ErrMalformedFilename, rel)
	}
	area, base := parts[0], parts[1]

	if _, err := parseYearDir(area); err == nil {
		dec, err := Decode(filepath.Join(area, base))
		if err != nil {
			return group.Identity{}, err
		}
		var t group.Type
		switch dec.Granularity {
		case group.GranDay:
			t = group.DayNotes
		case group.GranMonth:
			t = group.MonthNotes
		default:
			t = group.YearNotes
		}
		return group.NewCalendar(t, dec.Date).Archived(tag), nil
	}

	for _, t := range group.Types() {
		d := t.Descriptor()
		if d.AreaName != area {
			continue
		}
		prefix := d.FilePrefix + "_"
		if !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, Ext) {
			break
		}
		name := strings.TrimSuffix(strings.TrimPrefix(base, prefix), Ext)
		return group.NewNamed(t, name).Archived(tag), nil
	}
	return group.Identity{}, fmt.Errorf("%w: no area matches %q", apperr.ErrMalformedFilename, rel)
}

// parseYearDir accepts exactly four digits. Anything else is malformed;
// the scan relies on this to skip stray directories.
func parseYearDir(name string) (int, error) {
	if len(name) != 4 {
		return 0, fmt.Errorf("%w: year dir %q", apperr.ErrMalformedFilename, name)
	}
	y, err := strconv.Atoi(name)
	if err != nil || y < 1 {
		return 0, fmt.Errorf("%w: year dir %q", apperr.ErrMalformedFilename, name)
	}
	return y, nil
}

func parseToken(s string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("value %q outside %d..%d", s, lo, hi)
	}
	return v, nil
}
