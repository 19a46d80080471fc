// Package models defines the domain types for Daybook: note records, group
// properties, and the two-element payload persisted for every group.
package models

import (
	"strings"
	"time"
)

// Status is the completion state of a to-do style record.
type Status int

const (
	StatusNone Status = iota
	StatusOpen
	StatusStarted
	StatusDone
	StatusDeferred
)

// NoteRecord is one user-visible entry in a group. Identity is positional
// (its index in the owning list); there is no stable key. A record whose
// Text is blank carries no data and is dropped at save time.
type NoteRecord struct {
	Text         string    `json:"text"`
	Subject      string    `json:"subject,omitempty"`
	Extended     string    `json:"extended,omitempty"`
	LastModified time.Time `json:"last_modified,omitzero"`
	Priority     int       `json:"priority,omitempty"`
	Status       Status    `json:"status,omitempty"`
	IconIndex    int       `json:"icon_index,omitempty"`
	LinkedDate   string    `json:"linked_date,omitempty"` // 2006-01-02
}

// HasText reports whether the record carries data.
func (r NoteRecord) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}

// GroupProperties is the per-group metadata co-persisted with the note
// list. All fields are optional; the zero value is a valid default.
type GroupProperties struct {
	ColumnOrder    []int           `json:"column_order,omitempty"`
	ShowCompleted  bool            `json:"show_completed,omitempty"`
	MaxPriority    int             `json:"max_priority,omitempty"`
	SearchCriteria *SearchCriteria `json:"search,omitempty"`
	GoalStatus     *GoalStatus     `json:"goal_status,omitempty"`
}

// SearchCriteria is the snapshot of the query that produced a search
// results group.
type SearchCriteria struct {
	Text          string   `json:"text"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
	Areas         []string `json:"areas,omitempty"`
}

// GoalStatus holds the current and overall status of a goals group.
type GoalStatus struct {
	Current string `json:"current,omitempty"`
	Overall string `json:"overall,omitempty"`
}
