package group

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Identity addresses one group on disk: a type plus either a date (calendar
// kinds) or a user-chosen name (named kinds), and an optional archive tag.
type Identity struct {
	Type       Type
	Name       string
	Date       time.Time
	ArchiveTag string
}

// NewCalendar builds an identity for a date-keyed group. The date is
// truncated to the type's granularity and Name is set to its canonical
// rendering.
func NewCalendar(t Type, date time.Time) Identity {
	d := t.Descriptor()
	date = Truncate(date, d.Granularity)
	return Identity{Type: t, Name: canonicalDateName(date, d.Granularity), Date: date}
}

// NewNamed builds an identity for a name-keyed group.
func NewNamed(t Type, name string) Identity {
	return Identity{Type: t, Name: name}
}

// Archived returns a copy of the identity addressed under the given
// archive storage name.
func (id Identity) Archived(tag string) Identity {
	id.ArchiveTag = tag
	return id
}

// Key returns a stable string usable as a map key. Two identities that
// resolve to the same on-disk location share a key.
func (id Identity) Key() string {
	var b strings.Builder
	b.WriteString(id.Type.String())
	b.WriteByte('/')
	if id.ArchiveTag != "" {
		b.WriteString(id.ArchiveTag)
		b.WriteByte('/')
	}
	if id.Type.Calendar() {
		b.WriteString(canonicalDateName(id.Date, id.Type.Descriptor().Granularity))
	} else {
		b.WriteString(id.Name)
	}
	return b.String()
}

// Validate checks that the identity can be mapped to a file path.
func (id Identity) Validate() error {
	if id.Type.Descriptor().Name == "" {
		return fmt.Errorf("identity: unknown group type %d", int(id.Type))
	}
	if id.Type.Calendar() {
		if id.Date.IsZero() {
			return fmt.Errorf("identity: %s requires a date", id.Type)
		}
		if y := id.Date.Year(); y < 1 || y > 9999 {
			return fmt.Errorf("identity: year %d outside 1..9999", y)
		}
		return noPathSeparators(id.ArchiveTag)
	}
	return validation.ValidateStruct(&id,
		validation.Field(&id.Name, validation.Required,
			validation.By(noPathSeparators), validation.Length(1, 200)),
		validation.Field(&id.ArchiveTag, validation.By(noPathSeparators)),
	)
}

func noPathSeparators(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return fmt.Errorf("must not contain path separators")
	}
	return nil
}

// canonicalDateName renders a date at the given granularity. This is the
// user-visible group name for calendar kinds, not the on-disk stamp.
func canonicalDateName(t time.Time, g Granularity) string {
	switch g {
	case GranDay:
		return t.Format("2006-01-02")
	case GranMonth:
		return t.Format("2006-01")
	case GranYear:
		return t.Format("2006")
	default:
		return ""
	}
}
